package localllm

import (
	"path/filepath"
	"strings"

	"diskscope/internal/insight"
	"diskscope/internal/textutil"
)

// unknownParent is the sentinel used when a parent directory cannot be
// derived from the node's paths.
const unknownParent = "unknown"

// BuildPrompt renders the generation prompt for a node. The template is
// fixed-order and built purely from node attributes, so identical attributes
// always produce a byte-identical prompt regardless of locale or clock.
func BuildPrompt(node insight.Node) string {
	typeLabel := "file"
	if node.IsDir {
		typeLabel = "directory"
	}
	path := strings.TrimSpace(node.FullPath)
	if path == "" {
		path = strings.TrimSpace(node.DisplayPath)
	}

	var b strings.Builder
	b.WriteString("You are a disk usage analyst. In one short sentence, describe the likely purpose of the ")
	b.WriteString(typeLabel)
	b.WriteString(" below. Mention whether it looks like cache, log, temporary, operating system, or application data when that is apparent.\n\n")
	b.WriteString("Name: ")
	b.WriteString(node.Name)
	b.WriteString("\nType: ")
	b.WriteString(typeLabel)
	b.WriteString("\nPath: ")
	b.WriteString(path)
	b.WriteString("\nSize: ")
	b.WriteString(textutil.FormatSizeBinary(node.SizeBytes))
	b.WriteString("\nParent directory: ")
	b.WriteString(parentDir(path))
	b.WriteString("\n\nRespond with plain text only.")
	return b.String()
}

func parentDir(path string) string {
	if path == "" {
		return unknownParent
	}
	parent := filepath.Dir(path)
	if parent == "" || parent == "." || parent == path {
		return unknownParent
	}
	return parent
}
