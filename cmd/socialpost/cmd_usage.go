package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"socialpost/internal/render"
	"socialpost/internal/usage"
)

func newUsageCmd(a *app) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show token usage of generation requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reset {
				a.tracker.Reset()
				a.print(a.renderer.Success("Usage counters cleared"))
				return nil
			}

			stats := a.tracker.Stats()
			if stats.Total.Requests == 0 {
				fmt.Fprintln(a.out, "No generation requests recorded yet.")
				return nil
			}

			styles := a.renderer.Styles()
			fmt.Fprintln(a.out, usageTable("By operation", stats.ByOperation, nil).View(styles))
			fmt.Fprintln(a.out, usageTable("By model", stats.ByModel, nil).View(styles))
			if len(stats.ByBrand) > 0 {
				brandName := func(id string) string {
					if b, ok := a.store.Brand(id); ok {
						return b.Name
					}
					return id + " (deleted)"
				}
				fmt.Fprintln(a.out, usageTable("By brand", stats.ByBrand, brandName).View(styles))
			}
			fmt.Fprintf(a.out, "Total: %d requests, %d tokens (%d in, %d out)\n",
				stats.Total.Requests, stats.Total.Total, stats.Total.Input, stats.Total.Output)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear all counters")
	return cmd
}

func usageTable(title string, counts map[string]usage.TokenCounts, label func(string) string) *render.Table {
	t := render.NewTable(title, "Name", "Requests", "Input", "Output", "Total")
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		c := counts[key]
		name := key
		if label != nil {
			name = label(key)
		}
		t.AddRow(name,
			fmt.Sprint(c.Requests), fmt.Sprint(c.Input), fmt.Sprint(c.Output), fmt.Sprint(c.Total))
	}
	return t
}
