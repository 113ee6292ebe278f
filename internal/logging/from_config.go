package logging

import (
	"log/slog"
	"os"
	"path/filepath"

	"diskscope/internal/config"
)

// NewFromConfig creates a logger using application config defaults, writing
// to stdout plus a log file under the configured log directory.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console"})
	}

	outputs := []string{"stdout"}
	if cfg.Paths.LogDir != "" {
		if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err == nil {
			outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "diskscope.log"))
		}
	}

	return New(Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: outputs,
	})
}
