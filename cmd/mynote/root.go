package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote"
	"github.com/imran-moonward/mynote/pkg/codec"
)

var (
	verbose bool
	dir     string
	adapter string
	format  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mynote",
	Short: "Client notes kept in a local store",
	Long: `mynote keeps short notes about clients, each filed under a category.
The whole collection lives in one record on disk (a JSON or YAML file, or a
SQLite database) and is rewritten after every change.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Store directory (default: .mynote under the nearest root)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter (fs, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "Record format for the fs adapter (json, yaml)")
}

// storeDir resolves --dir.
func storeDir() string {
	if dir != "" {
		return dir
	}
	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	return mynote.DefaultDir(cwd)
}

// openApp opens the store and loads it. Any failure is fatal.
func openApp(ctx context.Context, opts ...mynote.Option) *mynote.App {
	c, err := codec.ByName(format)
	if err != nil {
		fatal("Invalid --format", err)
	}

	base := []mynote.Option{
		mynote.WithAdapter(adapter),
		mynote.WithCodec(c),
		mynote.WithLogger(slog.Default()),
		// --dir always names the real store
		mynote.WithDevSafety(false),
	}
	a, err := mynote.Open(storeDir(), append(base, opts...)...)
	if err != nil {
		fatal("Failed to open store", err)
	}
	if err := a.Start(ctx); err != nil {
		closeApp(ctx, a)
		fatal("Failed to load notes", err)
	}
	return a
}

// closeApp prints the snacks raised during the command and releases the store.
func closeApp(ctx context.Context, a *mynote.App) {
	printSnacks(a)
	if err := a.Close(ctx); err != nil {
		fatal("Failed to close store", err)
	}
}

func printSnacks(a *mynote.App) {
	for _, s := range a.Snacks().Snacks() {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", s.Severity, s.Message)
	}
}
