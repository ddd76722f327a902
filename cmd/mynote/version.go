package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mynote",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mynote version %s\n", mynote.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
