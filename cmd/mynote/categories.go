package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote/pkg/core"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List or change the categories offered by the editor",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)
		defer closeApp(ctx, a)

		for _, c := range a.Notes().Categories() {
			fmt.Println(c)
		}
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)
		a.Notes().AddCategory(core.CategoryType(args[0]))
		err := a.Notes().PersistAndWait(ctx)
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to save categories", err)
		}
	},
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)
		a.Notes().RemoveCategory(core.CategoryType(args[0]))
		err := a.Notes().PersistAndWait(ctx)
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to save categories", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(&cobra.Command{Use: "list", Short: "List categories", Args: cobra.NoArgs, Run: categoriesCmd.Run})
	categoriesCmd.AddCommand(categoriesAddCmd, categoriesRemoveCmd)
}
