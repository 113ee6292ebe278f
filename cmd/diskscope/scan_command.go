package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diskscope/internal/insightcache"
	"diskscope/internal/scanner"
	"diskscope/internal/textutil"
)

const scanSummaryWidth = 60

type scanRow struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Size     int64  `json:"size_bytes"`
	Category string `json:"category,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Source   string `json:"source,omitempty"`
}

func newScanCommand(cmdCtx *commandContext) *cobra.Command {
	var withInsights bool
	var refresh bool
	var jsonOut bool
	var maxDepth int
	var topEntries int

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory tree and show its largest entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			opts := scanner.Options{
				Root:       root,
				MaxDepth:   cfg.Scan.MaxDepth,
				ScrubPaths: cfg.Scan.ScrubPaths,
			}
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = maxDepth
			}
			limit := cfg.Scan.TopEntries
			if cmd.Flags().Changed("top") {
				limit = topEntries
			}

			result, err := scanner.New(logger).Scan(cmd.Context(), opts)
			if err != nil {
				return err
			}
			nodes := scanner.Largest(result, limit)

			rows := make([]scanRow, 0, len(nodes))
			for _, node := range nodes {
				typeLabel := "file"
				if node.IsDir {
					typeLabel = "dir"
				}
				rows = append(rows, scanRow{
					Path: node.DisplayPath,
					Type: typeLabel,
					Size: node.SizeBytes,
				})
			}

			if withInsights {
				var store *insightcache.Store
				store, err = cmdCtx.openCache()
				if err != nil {
					logger.Warn("insight cache unavailable, describing without it", "error", err)
					store = nil
				} else {
					defer store.Close()
				}

				coordinator := cmdCtx.newCoordinator(logger)
				settings := cfg.InsightSettings()
				for i, node := range nodes {
					described := describeWithCache(cmd.Context(), store, coordinator, node, settings, refresh, logger)
					rows[i].Category = categoryLabel(described.Category)
					rows[i].Summary = described.Summary
					rows[i].Source = described.Source
				}
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"root":        result.Root.Node.DisplayPath,
					"total_files": result.TotalFiles,
					"total_dirs":  result.TotalDirs,
					"total_bytes": result.TotalBytes,
					"skipped":     result.Skipped,
					"entries":     rows,
				})
			}

			headers := []string{"Path", "Type", "Size"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
			if withInsights {
				headers = append(headers, "Category", "Summary")
				aligns = append(aligns, alignLeft, alignLeft)
			}
			tableRows := make([][]string, 0, len(rows))
			for _, row := range rows {
				cells := []string{row.Path, row.Type, displaySize(row.Size)}
				if withInsights {
					cells = append(cells, row.Category, textutil.Truncate(row.Summary, scanSummaryWidth))
				}
				tableRows = append(tableRows, cells)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, tableRows, aligns))
			fmt.Fprintf(out, "Scanned %d files and %d directories, %s total",
				result.TotalFiles, result.TotalDirs, displaySize(result.TotalBytes))
			if result.Skipped > 0 {
				fmt.Fprintf(out, " (%d entries skipped)", result.Skipped)
			}
			fmt.Fprintln(out)

			if volume, volErr := scanner.VolumeInfo(root); volErr == nil {
				fmt.Fprintf(out, "Volume: %s free of %s\n",
					humanizeUnsigned(volume.FreeBytes), humanizeUnsigned(volume.TotalBytes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withInsights, "insights", false, "Describe the largest entries with the configured insight provider")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore cached insights and describe again")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Limit recursion depth (0 = unlimited)")
	cmd.Flags().IntVar(&topEntries, "top", 0, "How many of the largest entries to show")

	return cmd
}
