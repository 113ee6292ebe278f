package main

import (
	"log/slog"

	"diskscope/internal/config"
	"diskscope/internal/insight"
	"diskscope/internal/insightcache"
	"diskscope/internal/logging"
	"diskscope/internal/services/cloudllm"
	"diskscope/internal/services/heuristic"
	"diskscope/internal/services/localllm"
)

// commandContext lazily loads shared dependencies so cheap commands (help,
// config path) never touch config or the cache database.
type commandContext struct {
	configFlag *string

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// newCoordinator wires every provider variant; the active mode in the
// per-call settings decides which one actually runs.
func (c *commandContext) newCoordinator(logger *slog.Logger) *insight.Coordinator {
	coordinator := insight.NewCoordinator(logger)
	coordinator.Register(insight.ModeHeuristic, heuristic.New(logger))
	coordinator.Register(insight.ModeLocalLLM, localllm.New(logger))
	coordinator.Register(insight.ModeCloudLLM, cloudllm.New(logger))
	return coordinator
}

func (c *commandContext) openCache() (*insightcache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return insightcache.Open(cfg)
}
