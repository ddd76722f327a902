package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote"
)

var editID int

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a note",
	Long:  `Change the client, category or text of a note. Omitted flags keep their value.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)

		if err := a.EditNote(editID); err != nil {
			closeApp(ctx, a)
			fatal("Failed to edit note", err)
		}
		n, err := a.SubmitEdit(ctx, mynote.Draft{
			ClientName: noteClient,
			Category:   mynote.CategoryType(noteCategory),
			Text:       noteText,
		})
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to edit note", err)
		}
		fmt.Println(n)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().IntVar(&editID, "id", 0, "Note ID")
	editCmd.Flags().StringVar(&noteClient, "client", "", "New client name")
	editCmd.Flags().StringVar(&noteCategory, "category", "", "New category")
	editCmd.Flags().StringVar(&noteText, "text", "", "New text")
	_ = editCmd.MarkFlagRequired("id")
}
