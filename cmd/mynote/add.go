package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote"
)

var (
	noteClient   string
	noteCategory string
	noteText     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note",
	Long: `Add a note. Without --client the first client is used, without
--category the note is filed under "Goal Evidence".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)

		n, err := a.CreateNote(ctx, mynote.Draft{
			ClientName: noteClient,
			Category:   mynote.CategoryType(noteCategory),
			Text:       noteText,
		})
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to add note", err)
		}
		fmt.Println(n)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&noteClient, "client", "", "Client name")
	addCmd.Flags().StringVar(&noteCategory, "category", "", "Category")
	addCmd.Flags().StringVar(&noteText, "text", "", "Note text")
	_ = addCmd.MarkFlagRequired("text")
}
