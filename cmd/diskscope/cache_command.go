package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"diskscope/internal/insight"
)

func newCacheCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the insight cache",
	}
	cmd.AddCommand(newCacheStatsCommand(cmdCtx))
	cmd.AddCommand(newCacheClearCommand(cmdCtx))
	return cmd
}

func newCacheStatsCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show insight cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdCtx.openCache()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache: %s\n", stats.DBPath)
			fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			if len(stats.ByCategory) == 0 {
				return nil
			}

			categories := make([]string, 0, len(stats.ByCategory))
			for category := range stats.ByCategory {
				categories = append(categories, string(category))
			}
			sort.Strings(categories)
			rows := make([][]string, 0, len(categories))
			for _, category := range categories {
				rows = append(rows, []string{
					category,
					fmt.Sprintf("%d", stats.ByCategory[insight.Category(category)]),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Category", "Entries"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCacheClearCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached insight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdCtx.openCache()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Insight cache cleared")
			return nil
		},
	}
}
