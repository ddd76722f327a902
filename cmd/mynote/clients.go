package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote/pkg/core"
)

var (
	clientID   int
	clientName string
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List or change the client list",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)
		defer closeApp(ctx, a)

		for _, c := range a.Notes().Clients() {
			fmt.Printf("%d\t%s\n", c.ID, c.Name)
		}
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)

		id := clientID
		if id == 0 {
			for _, c := range a.Notes().Clients() {
				id = max(id, c.ID)
			}
			id++
		}
		a.Notes().AddClient(core.Client{ID: id, Name: clientName})
		err := a.Notes().PersistAndWait(ctx)
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to save clients", err)
		}
		fmt.Printf("%d\t%s\n", id, clientName)
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a client by ID",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := openApp(ctx)
		a.Notes().RemoveClient(core.Client{ID: clientID})
		err := a.Notes().PersistAndWait(ctx)
		closeApp(ctx, a)
		if err != nil {
			fatal("Failed to save clients", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.AddCommand(&cobra.Command{Use: "list", Short: "List clients", Args: cobra.NoArgs, Run: clientsCmd.Run})
	clientsCmd.AddCommand(clientsAddCmd, clientsRemoveCmd)

	clientsAddCmd.Flags().IntVar(&clientID, "id", 0, "Client ID (default: next free)")
	clientsAddCmd.Flags().StringVar(&clientName, "name", "", "Client name")
	_ = clientsAddCmd.MarkFlagRequired("name")

	clientsRemoveCmd.Flags().IntVar(&clientID, "id", 0, "Client ID")
	_ = clientsRemoveCmd.MarkFlagRequired("id")
}
