package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty store",
	Long: `Create a .mynote directory in the current directory (or --dir) and
write an empty record with the default categories and clients.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		target := dir
		if target == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			target = filepath.Join(cwd, mynote.SystemDir)
		}
		dir = target

		ctx := context.Background()
		a := openApp(ctx)
		if err := a.Notes().PersistAndWait(ctx); err != nil {
			closeApp(ctx, a)
			fatal("Failed to write store", err)
		}
		closeApp(ctx, a)

		fmt.Println("Initialized mynote store in", target)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
