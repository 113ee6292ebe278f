package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diskscope/internal/insight"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Insight.Mode != "disabled" {
		t.Fatalf("default mode = %q, want disabled", cfg.Insight.Mode)
	}
	if cfg.Insight.TimeoutSeconds != 300 {
		t.Fatalf("default timeout = %d, want 300", cfg.Insight.TimeoutSeconds)
	}
	if cfg.LocalLLM.Endpoint != "http://localhost:11434/api/generate" {
		t.Fatalf("default local endpoint = %q", cfg.LocalLLM.Endpoint)
	}
	if cfg.Scan.TopEntries != 20 {
		t.Fatalf("default top entries = %d, want 20", cfg.Scan.TopEntries)
	}
}

func TestLoadParsesDocument(t *testing.T) {
	path := writeConfig(t, `
[insight]
mode = "local-llm"
cache_mode = "path-size"
timeout_seconds = 120

[local_llm]
endpoint = "  http://llm.lan:11434/api/generate  "
model = "llama3:8b"

[scan]
max_depth = 3
scrub_paths = true
top_entries = 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Insight.Mode != "local-llm" || cfg.Insight.TimeoutSeconds != 120 {
		t.Fatalf("insight section not applied: %+v", cfg.Insight)
	}
	if cfg.LocalLLM.Endpoint != "http://llm.lan:11434/api/generate" {
		t.Fatalf("endpoint not trimmed: %q", cfg.LocalLLM.Endpoint)
	}
	if !cfg.Scan.ScrubPaths || cfg.Scan.MaxDepth != 3 {
		t.Fatalf("scan section not applied: %+v", cfg.Scan)
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("explicitly named missing config should error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DISKSCOPE_MODE", "cloud-llm")
	t.Setenv("DISKSCOPE_LOCAL_API_KEY", "local-secret")
	t.Setenv("DISKSCOPE_CLOUD_API_KEY", "cloud-secret")

	cfg, err := Load(writeConfig(t, `
[insight]
mode = "disabled"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Insight.Mode != "cloud-llm" {
		t.Fatalf("env override lost: mode = %q", cfg.Insight.Mode)
	}
	if cfg.LocalLLM.APIKey != "local-secret" || cfg.CloudLLM.APIKey != "cloud-secret" {
		t.Fatal("API key overrides not applied")
	}
}

func TestLoadExpandsTilde(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[paths]
cache_dir = "~/custom/cache"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.HasPrefix(cfg.Paths.CacheDir, "~") {
		t.Fatalf("tilde not expanded: %q", cfg.Paths.CacheDir)
	}
	if !filepath.IsAbs(cfg.Paths.CacheDir) {
		t.Fatalf("expanded path not absolute: %q", cfg.Paths.CacheDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log format", func(c *Config) { c.Log.Format = "yaml" }},
		{"bad mode", func(c *Config) { c.Insight.Mode = "telepathy" }},
		{"bad cache mode", func(c *Config) { c.Insight.CacheMode = "inode" }},
		{"negative depth", func(c *Config) { c.Scan.MaxDepth = -1 }},
		{"negative top entries", func(c *Config) { c.Scan.TopEntries = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestValidateAllowsBlankCredentials(t *testing.T) {
	cfg := Default()
	cfg.Insight.Mode = "cloud-llm"
	cfg.CloudLLM.APIKey = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("blank credentials should validate (fail-soft at describe time): %v", err)
	}
}

func TestInsightSettingsSnapshot(t *testing.T) {
	cfg := Default()
	cfg.Insight.Mode = "local-llm"
	cfg.Insight.TimeoutSeconds = 90
	cfg.LocalLLM.Model = "llama3"
	cfg.LocalLLM.APIKey = "k"

	settings := cfg.InsightSettings()
	if settings.Mode != insight.ModeLocalLLM {
		t.Fatalf("mode = %q", settings.Mode)
	}
	if settings.TimeoutSeconds != 90 || settings.LocalModel != "llama3" || settings.LocalAPIKey != "k" {
		t.Fatalf("snapshot incomplete: %+v", settings)
	}
	// Mutating the config afterwards must not affect the snapshot.
	cfg.LocalLLM.Model = "other"
	if settings.LocalModel != "llama3" {
		t.Fatal("settings should be a copy, not a view")
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	cfg, err := Load(writeConfig(t, SampleConfig()))
	if err != nil {
		t.Fatalf("embedded sample config must load cleanly: %v", err)
	}
	if cfg.Insight.Mode == "" {
		t.Fatal("sample config should spell out the insight mode")
	}
}
