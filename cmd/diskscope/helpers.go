package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"diskscope/internal/insight"
	"diskscope/internal/insightcache"
	"diskscope/internal/services"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isTerminal(os.Stdout) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func displaySize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

func humanizeUnsigned(size uint64) string {
	return humanize.IBytes(size)
}

// describeWithCache runs a describe call with cache read-through: a cached
// entry wins unless refresh is set, and non-empty results are persisted.
// The cache store may be nil, in which case every call goes to the provider.
func describeWithCache(
	ctx context.Context,
	store *insightcache.Store,
	coordinator *insight.Coordinator,
	node insight.Node,
	settings insight.Settings,
	refresh bool,
	logger *slog.Logger,
) insight.Insight {
	if store != nil && !refresh {
		cached, err := store.Get(ctx, node)
		if err == nil {
			return cached
		}
		if !errors.Is(err, services.ErrNotFound) {
			logger.Warn("insight cache lookup failed", "node", node.DisplayPath, "error", err)
		}
	}

	result := coordinator.Describe(ctx, node, settings)

	if store != nil {
		if err := store.Put(ctx, node, result); err != nil {
			logger.Warn("insight cache store failed", "node", node.DisplayPath, "error", err)
		}
	}
	return result
}

func categoryLabel(category insight.Category) string {
	if category == "" {
		return string(insight.CategoryUnknown)
	}
	return string(category)
}

func confidenceLabel(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
