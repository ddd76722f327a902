package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote/pkg/core"
)

var (
	listJSON       bool
	filterClient   string
	filterCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List all notes. --client and --category take glob patterns
(e.g. --client 'Gary*' or --category '*Duty').`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range []string{filterClient, filterCategory} {
			if p != "" && !doublestar.ValidatePattern(p) {
				fatal("Invalid pattern", fmt.Errorf("%q", p))
			}
		}

		ctx := context.Background()
		a := openApp(ctx)
		filtered := filterNotes(a.Notes().Notes(), filterClient, filterCategory)
		closeApp(ctx, a)

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, n := range filtered {
			fmt.Println(n)
		}
	},
}

// filterNotes keeps the notes whose client name and category match the
// patterns. An empty pattern matches everything.
func filterNotes(notes []core.Note, client, category string) []core.Note {
	filtered := []core.Note{}
	for _, n := range notes {
		if !matches(client, n.Client.Name) || !matches(category, string(n.Category)) {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered
}

func matches(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	ok, err := doublestar.Match(pattern, value)
	return err == nil && ok
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterClient, "client", "", "Filter by client name (glob)")
	listCmd.Flags().StringVar(&filterCategory, "category", "", "Filter by category (glob)")
}
