package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"socialpost/internal/export"
	"socialpost/internal/logging"
	"socialpost/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <brand-id>",
		Short: "Show a brand's posts grouped by generation date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			a.print(a.renderer.History(b))
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <brand-id>",
		Short: "Export a brand's posts as CSV",
		Long: `Writes the brand's content history as CSV. Without --out the file is named
after the brand in the current directory; --out - writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.brand(args[0])
			if err != nil {
				return err
			}
			if out == "-" {
				return export.WriteCSV(a.out, b.Posts)
			}
			if len(b.Posts) == 0 {
				return export.ErrNoPosts
			}
			if out == "" {
				out = export.FileName(b)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := export.WriteCSV(f, b.Posts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}

			abs, _ := filepath.Abs(out)
			a.print(a.renderer.Success("Exported %d posts to %s", len(b.Posts), abs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report changes other processes make to the brand store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, ok := a.backend.(*store.FileBackend)
			if !ok {
				return errors.New("watch requires the file store backend")
			}

			ctx := a.context(cmd)
			changes := make(chan struct{}, 1)
			w, err := fb.Watch(ctx, store.StorageKey, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})
			if err != nil {
				return fmt.Errorf("failed to watch store: %w", err)
			}
			defer w.Stop()

			fmt.Fprintf(a.out, "Watching %s (Ctrl+C to stop)\n", fb.Path(store.StorageKey))
			for {
				select {
				case <-ctx.Done():
					stats := w.Stats()
					logging.Get(logging.CategoryCLI).Debug("watch stopped: %d events, %d changes", stats.Events, stats.Changes)
					return nil
				case <-changes:
					n := a.store.Reload()
					fmt.Fprintf(a.out, "store changed: %d brands\n", n)
				}
			}
		},
	}
}
