package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imran-moonward/mynote"
	lifecycleadapter "github.com/imran-moonward/mynote/pkg/adapters/lifecycle"
	"github.com/imran-moonward/mynote/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made to the store by other processes",
	Long: `Watch the stored record and reload it whenever another process
rewrites it. Only the fs adapter supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a := openApp(ctx)
		err := runWatch(ctx, a, os.Stdout)
		closeApp(context.Background(), a)
		if err != nil {
			fatal("Watch failed", err)
		}
	},
}

// runWatch reloads a whenever its storage reports an external change, until
// ctx is done.
func runWatch(ctx context.Context, a *mynote.App, out io.Writer) error {
	storage := a.Notes().Storage()
	w, ok := storage.(core.Watchable)
	if !ok {
		return fmt.Errorf("storage %T does not support watching", storage)
	}
	changes, err := w.Watch(ctx, core.StorageKey)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	src := lifecycleadapter.NewSource(changes, a.Notes().Watch(ctx))
	if err := src.Start(ctx); err != nil {
		return fmt.Errorf("start event source: %w", err)
	}

	fmt.Fprintf(out, "Watching %d notes. Press Ctrl+C to stop.\n", a.Notes().Len())
	for ev := range src.Events() {
		e, ok := ev.(core.Event)
		if !ok {
			continue
		}
		switch e.Type {
		case core.EventModify:
			if err := a.Refresh(ctx); err != nil {
				slog.Warn("reload failed", "error", err)
			}
		case core.EventLoad:
			fmt.Fprintf(out, "reloaded: %d notes\n", a.Notes().Len())
		default:
			slog.Debug("store event", "event", e.String())
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
