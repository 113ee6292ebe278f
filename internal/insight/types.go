package insight

import (
	"strings"
	"time"
)

// Mode selects which provider variant handles a describe call. Exactly one
// mode is active per call; it is carried inside the Settings snapshot.
type Mode string

const (
	ModeDisabled  Mode = "disabled"
	ModeHeuristic Mode = "heuristic"
	ModeLocalLLM  Mode = "local-llm"
	ModeCloudLLM  Mode = "cloud-llm"
)

// ParseMode maps a configuration string onto a Mode. Unrecognized values
// degrade to ModeDisabled so a bad config can never route to the network.
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "heuristic", "offline":
		return ModeHeuristic
	case "local-llm", "local_llm", "localllm", "local":
		return ModeLocalLLM
	case "cloud-llm", "cloud_llm", "cloudllm", "cloud":
		return ModeCloudLLM
	default:
		return ModeDisabled
	}
}

// Category is the coarse purpose label attached to a node.
type Category string

const (
	CategoryUnknown     Category = "unknown"
	CategoryCache       Category = "cache"
	CategoryLog         Category = "log"
	CategoryTemporary   Category = "temporary"
	CategoryOS          Category = "os"
	CategoryApplication Category = "application"
)

// Insight is the value produced once per describe call. It is transient:
// created, returned, and then owned by the caller.
type Insight struct {
	Category   Category
	Summary    string
	Confidence float64
	Source     string
	Restricted bool
}

// Empty returns the canonical Unknown insight shared by every fail-soft
// path: disabled mode, missing provider, invalid configuration, transport
// failure, and blank model output all resolve to this value.
func Empty() Insight {
	return Insight{Category: CategoryUnknown}
}

// IsZero reports whether the insight carries no usable summary.
func (i Insight) IsZero() bool {
	return strings.TrimSpace(i.Summary) == ""
}

// Node is a scanned file or directory entry. FullPath is empty when the
// scanner runs with path scrubbing enabled; DisplayPath is always set.
type Node struct {
	Name        string
	FullPath    string
	DisplayPath string
	IsDir       bool
	SizeBytes   int64
}

// Settings is the read-only per-call configuration snapshot. It flows by
// value into every describe call; no provider retains it across calls.
type Settings struct {
	Mode Mode

	LocalEndpoint string
	LocalModel    string
	LocalAPIKey   string

	CloudEndpoint string
	CloudModel    string
	CloudAPIKey   string

	TimeoutSeconds int
}

// DefaultGenerationTimeout bounds generation calls when the configured
// value is unset or non-positive. Self-hosted models can legitimately take
// minutes, so the default is deliberately generous.
const DefaultGenerationTimeout = 300 * time.Second

// GenerationTimeout returns the per-request budget for generation calls.
func (s Settings) GenerationTimeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return DefaultGenerationTimeout
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}
