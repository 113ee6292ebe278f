package config

import (
	"errors"
	"fmt"
	"strings"
)

var validModes = map[string]struct{}{
	"":          {},
	"disabled":  {},
	"heuristic": {},
	"offline":   {},
	"local-llm": {},
	"local_llm": {},
	"localllm":  {},
	"local":     {},
	"cloud-llm": {},
	"cloud_llm": {},
	"cloudllm":  {},
	"cloud":     {},
}

// Validate ensures the configuration is usable. Credentials are deliberately
// not required here: a blank endpoint, model, or key is handled fail-soft at
// describe time, and validation should not block offline use.
func (c *Config) Validate() error {
	if err := c.validateLog(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateInsight(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLog() error {
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
}

func (c *Config) validateScan() error {
	if c.Scan.MaxDepth < 0 {
		return errors.New("scan.max_depth must be zero (unlimited) or positive")
	}
	if c.Scan.TopEntries < 0 {
		return errors.New("scan.top_entries must be zero or positive")
	}
	return nil
}

func (c *Config) validateInsight() error {
	if _, ok := validModes[strings.ToLower(c.Insight.Mode)]; !ok {
		return fmt.Errorf("insight.mode %q is not recognized (disabled, heuristic, local-llm, cloud-llm)", c.Insight.Mode)
	}
	switch strings.ToLower(c.Insight.CacheMode) {
	case "", "path", "path-size", "path_size":
	default:
		return fmt.Errorf("insight.cache_mode must be path or path-size, got %q", c.Insight.CacheMode)
	}
	return nil
}
