package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"diskscope/internal/insight"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Log contains logging configuration.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Scan contains configuration for the directory scanner.
type Scan struct {
	MaxDepth   int  `toml:"max_depth"`
	ScrubPaths bool `toml:"scrub_paths"`
	TopEntries int  `toml:"top_entries"`
}

// Insight contains the orchestration settings for describe calls.
type Insight struct {
	Mode           string `toml:"mode"`
	CacheMode      string `toml:"cache_mode"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LLMEndpoint configures one generation backend.
type LLMEndpoint struct {
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

// Config is the root configuration document.
type Config struct {
	Paths    Paths       `toml:"paths"`
	Log      Log         `toml:"log"`
	Scan     Scan        `toml:"scan"`
	Insight  Insight     `toml:"insight"`
	LocalLLM LLMEndpoint `toml:"local_llm"`
	CloudLLM LLMEndpoint `toml:"cloud_llm"`
}

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "diskscope", "config.toml"), nil
}

// SampleConfig returns the embedded annotated sample document.
func SampleConfig() string {
	return sampleConfig
}

// Load reads the configuration from path (or the default location when path
// is empty), applies a .env overlay and environment overrides, expands
// tildes, and validates. A missing file yields the defaults so the tool
// works out of the box.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved := strings.TrimSpace(path)
	if resolved == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		resolved = defaultPath
	}

	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist) && strings.TrimSpace(path) == "":
		// No config file: defaults apply.
	default:
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}

	// .env overlay is best-effort; absence is not an error.
	_ = godotenv.Load()
	cfg.applyEnvOverrides()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DISKSCOPE_MODE"); v != "" {
		c.Insight.Mode = v
	}
	if v := os.Getenv("DISKSCOPE_LOCAL_API_KEY"); v != "" {
		c.LocalLLM.APIKey = v
	}
	if v := os.Getenv("DISKSCOPE_CLOUD_API_KEY"); v != "" {
		c.CloudLLM.APIKey = v
	}
}

func (c *Config) normalize() {
	c.Paths.CacheDir = expandPath(strings.TrimSpace(c.Paths.CacheDir))
	c.Paths.LogDir = expandPath(strings.TrimSpace(c.Paths.LogDir))
	c.Log.Level = strings.TrimSpace(c.Log.Level)
	c.Log.Format = strings.TrimSpace(c.Log.Format)
	c.Insight.Mode = strings.TrimSpace(c.Insight.Mode)
	c.Insight.CacheMode = strings.TrimSpace(c.Insight.CacheMode)
	c.LocalLLM.Endpoint = strings.TrimSpace(c.LocalLLM.Endpoint)
	c.LocalLLM.Model = strings.TrimSpace(c.LocalLLM.Model)
	c.LocalLLM.APIKey = strings.TrimSpace(c.LocalLLM.APIKey)
	c.CloudLLM.Endpoint = strings.TrimSpace(c.CloudLLM.Endpoint)
	c.CloudLLM.Model = strings.TrimSpace(c.CloudLLM.Model)
	c.CloudLLM.APIKey = strings.TrimSpace(c.CloudLLM.APIKey)
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// EnsureDirectories creates the cache and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

// InsightSettings snapshots the configuration into the per-call value the
// coordinator and providers consume. Callers receive a copy; nothing here is
// retained or mutated by the insight subsystem.
func (c *Config) InsightSettings() insight.Settings {
	return insight.Settings{
		Mode:           insight.ParseMode(c.Insight.Mode),
		LocalEndpoint:  c.LocalLLM.Endpoint,
		LocalModel:     c.LocalLLM.Model,
		LocalAPIKey:    c.LocalLLM.APIKey,
		CloudEndpoint:  c.CloudLLM.Endpoint,
		CloudModel:     c.CloudLLM.Model,
		CloudAPIKey:    c.CloudLLM.APIKey,
		TimeoutSeconds: c.Insight.TimeoutSeconds,
	}
}
