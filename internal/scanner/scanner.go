package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"diskscope/internal/insight"
	"diskscope/internal/services"
)

// Options controls a single tree walk.
type Options struct {
	// Root is the directory (or file) to scan.
	Root string
	// MaxDepth limits recursion; 0 means unlimited.
	MaxDepth int
	// ScrubPaths withholds absolute paths from produced nodes: FullPath is
	// left empty and only the root-relative DisplayPath is populated.
	ScrubPaths bool
}

// Entry is one node in the scanned tree with aggregated directory sizes.
type Entry struct {
	Node     insight.Node
	Children []*Entry
}

// Result summarizes a completed scan.
type Result struct {
	Root       *Entry
	TotalFiles int64
	TotalDirs  int64
	TotalBytes int64
	Skipped    int64
}

// Scanner walks directory trees and produces the read-only nodes the
// insight subsystem consumes.
type Scanner struct {
	logger *slog.Logger
}

// New constructs a scanner.
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{logger: logger}
}

// Scan walks the tree rooted at opts.Root. Unreadable entries are skipped
// and counted, not fatal; cancellation is honored between entries.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Result, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "scanner", "resolve root", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "scanner", "stat root", opts.Root, err)
	}

	result := &Result{}
	entry, err := s.walk(ctx, root, root, info.IsDir(), 0, opts, result)
	if err != nil {
		return nil, err
	}
	result.Root = entry
	result.TotalBytes = entry.Node.SizeBytes
	return result, nil
}

func (s *Scanner) walk(ctx context.Context, root, path string, isDir bool, depth int, opts Options, result *Result) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan canceled: %w", err)
	}

	entry := &Entry{Node: makeNode(root, path, isDir, opts.ScrubPaths)}

	if !isDir {
		info, err := os.Lstat(path)
		if err != nil {
			result.Skipped++
			s.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			return entry, nil
		}
		entry.Node.SizeBytes = info.Size()
		result.TotalFiles++
		return entry, nil
	}

	result.TotalDirs++
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return entry, nil
	}

	children, err := os.ReadDir(path)
	if err != nil {
		result.Skipped++
		s.logger.Debug("skipping unreadable directory", "path", path, "error", err)
		return entry, nil
	}

	for _, child := range children {
		// Symlinks are reported but never followed; a link farm must not
		// inflate sizes or loop the walk.
		if child.Type()&os.ModeSymlink != 0 {
			continue
		}
		childEntry, err := s.walk(ctx, root, filepath.Join(path, child.Name()), child.IsDir(), depth+1, opts, result)
		if err != nil {
			return nil, err
		}
		entry.Node.SizeBytes += childEntry.Node.SizeBytes
		entry.Children = append(entry.Children, childEntry)
	}
	return entry, nil
}

func makeNode(root, path string, isDir bool, scrub bool) insight.Node {
	display, err := filepath.Rel(root, path)
	if err != nil || display == "." {
		display = filepath.Base(path)
	}
	node := insight.Node{
		Name:        filepath.Base(path),
		DisplayPath: display,
		IsDir:       isDir,
	}
	if !scrub {
		node.FullPath = path
	}
	return node
}

// Largest returns the n biggest entries of the tree (excluding the root
// itself), largest first.
func Largest(result *Result, n int) []insight.Node {
	if result == nil || result.Root == nil || n <= 0 {
		return nil
	}
	var nodes []insight.Node
	var collect func(entry *Entry)
	collect = func(entry *Entry) {
		for _, child := range entry.Children {
			nodes = append(nodes, child.Node)
			collect(child)
		}
	}
	collect(result.Root)

	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].SizeBytes != nodes[j].SizeBytes {
			return nodes[i].SizeBytes > nodes[j].SizeBytes
		}
		return nodes[i].DisplayPath < nodes[j].DisplayPath
	})
	if len(nodes) > n {
		nodes = nodes[:n]
	}
	return nodes
}
