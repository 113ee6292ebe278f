package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"diskscope/internal/insight"
	"diskscope/internal/insightcache"
	"diskscope/internal/scanner"
)

func newDescribeCommand(cmdCtx *commandContext) *cobra.Command {
	var refresh bool
	var jsonOut bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "describe <path>",
		Short: "Attach a purpose insight to a single file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			target, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path %s: %w", args[0], err)
			}
			info, err := os.Stat(target)
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}

			node := insight.Node{
				Name:        filepath.Base(target),
				DisplayPath: filepath.Base(target),
				IsDir:       info.IsDir(),
				SizeBytes:   info.Size(),
			}
			if !cfg.Scan.ScrubPaths {
				node.FullPath = target
				node.DisplayPath = target
			}
			if info.IsDir() {
				// Directories report aggregate size, same as in scan output.
				result, scanErr := scanner.New(logger).Scan(cmd.Context(), scanner.Options{
					Root:       target,
					MaxDepth:   cfg.Scan.MaxDepth,
					ScrubPaths: cfg.Scan.ScrubPaths,
				})
				if scanErr != nil {
					return scanErr
				}
				node.SizeBytes = result.TotalBytes
			}

			var store *insightcache.Store
			if !noCache {
				store, err = cmdCtx.openCache()
				if err != nil {
					logger.Warn("insight cache unavailable, describing without it", "error", err)
					store = nil
				} else {
					defer store.Close()
				}
			}

			coordinator := cmdCtx.newCoordinator(logger)
			described := describeWithCache(cmd.Context(), store, coordinator, node, cfg.InsightSettings(), refresh, logger)

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"path":       node.DisplayPath,
					"is_dir":     node.IsDir,
					"size_bytes": node.SizeBytes,
					"category":   categoryLabel(described.Category),
					"summary":    described.Summary,
					"confidence": described.Confidence,
					"source":     described.Source,
					"restricted": described.Restricted,
				})
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Path", node.DisplayPath},
				{"Type", nodeTypeLabel(node)},
				{"Size", displaySize(node.SizeBytes)},
				{"Category", categoryLabel(described.Category)},
				{"Summary", described.Summary},
				{"Confidence", confidenceLabel(described.Confidence)},
				{"Source", described.Source},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore any cached insight and describe again")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the insight cache entirely")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")

	return cmd
}

func nodeTypeLabel(node insight.Node) string {
	if node.IsDir {
		return "directory"
	}
	return "file"
}
