package heuristic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"diskscope/internal/insight"
	"diskscope/internal/logging"
)

const (
	providerName      = "heuristic"
	summaryConfidence = 0.5
)

// Provider classifies nodes entirely offline from name and path tokens.
// It never touches the network, so it is the safe default for privacy
// sensitive or air-gapped scans.
type Provider struct {
	logger *slog.Logger
	titler cases.Caser
}

var _ insight.Provider = (*Provider)(nil)

// New constructs the offline provider.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{logger: logger, titler: cases.Title(language.English)}
}

// segmentRules maps well-known path segments onto categories, checked in the
// same fixed group order the keyword classifier uses.
var segmentRules = []struct {
	category insight.Category
	segments []string
}{
	{insight.CategoryCache, []string{"cache", "caches", ".cache", "cachestorage", "缓存"}},
	{insight.CategoryLog, []string{"log", "logs", "crashlogs", "日志"}},
	{insight.CategoryTemporary, []string{"tmp", "temp", ".tmp", "temporary", "临时"}},
	{insight.CategoryOS, []string{"windows", "system32", "syswow64", "winsxs", "boot", "proc", "sys"}},
	{insight.CategoryApplication, []string{"program files", "program files (x86)", "applications", "appdata", "opt", "node_modules", "site-packages"}},
}

// extensionRules covers file suffixes the segment rules miss.
var extensionRules = map[string]insight.Category{
	".log":   insight.CategoryLog,
	".tmp":   insight.CategoryTemporary,
	".temp":  insight.CategoryTemporary,
	".cache": insight.CategoryCache,
	".exe":   insight.CategoryApplication,
	".dll":   insight.CategoryApplication,
	".sys":   insight.CategoryOS,
}

// categoryLabels spell out the human wording used in summaries.
var categoryLabels = map[insight.Category]string{
	insight.CategoryCache:       "cache",
	insight.CategoryLog:         "log",
	insight.CategoryTemporary:   "temporary",
	insight.CategoryOS:          "operating system",
	insight.CategoryApplication: "application",
}

// Describe classifies the node from its name and path. Nodes matching no
// rule yield the empty insight; there is nothing useful to say offline.
func (p *Provider) Describe(ctx context.Context, node insight.Node, settings insight.Settings) insight.Insight {
	logger := logging.WithContext(ctx, p.logger).With(logging.FieldComponent, providerName)

	category := p.classifyNode(node)
	if category == insight.CategoryUnknown {
		logger.Debug("no offline rule matched", "node", node.Name)
		return insight.Empty()
	}

	typeLabel := "File"
	if node.IsDir {
		typeLabel = "Directory"
	}
	label := p.titler.String(categoryLabels[category])
	summary := fmt.Sprintf("%s %q looks like %s data.", typeLabel, node.Name, label)

	logger.Debug("offline rule matched", "node", node.Name, "category", string(category))
	return insight.Insight{
		Category:   category,
		Summary:    summary,
		Confidence: summaryConfidence,
		Source:     providerName,
		Restricted: true,
	}
}

func (p *Provider) classifyNode(node insight.Node) insight.Category {
	path := node.FullPath
	if path == "" {
		path = node.DisplayPath
	}
	segments := pathSegments(path)
	segments = append(segments, strings.ToLower(node.Name))

	for _, rule := range segmentRules {
		for _, segment := range segments {
			for _, match := range rule.segments {
				if segment == match {
					return rule.category
				}
			}
		}
	}

	if !node.IsDir {
		ext := strings.ToLower(filepath.Ext(node.Name))
		if category, ok := extensionRules[ext]; ok {
			return category
		}
	}

	// Last chance: the bilingual keyword table used for model output also
	// catches names like "浏览器缓存" or "installer temp files".
	return insight.Classify(node.Name)
}

func pathSegments(path string) []string {
	if path == "" {
		return nil
	}
	normalized := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	parts := strings.Split(normalized, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
