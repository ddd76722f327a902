package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteID int

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)

		err := a.DeleteNote(ctx, deleteID)
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to delete note", err)
		}
		fmt.Printf("Note %d deleted.\n", deleteID)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().IntVar(&deleteID, "id", 0, "Note ID")
	_ = deleteCmd.MarkFlagRequired("id")
}
