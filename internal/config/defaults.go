package config

const (
	defaultCacheDir       = "~/.local/share/diskscope"
	defaultLogDir         = "~/.local/share/diskscope/logs"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultScanTopEntries = 20
	defaultInsightMode    = "disabled"
	defaultCacheMode      = "path"
	defaultTimeoutSeconds = 300
	defaultLocalEndpoint  = "http://localhost:11434/api/generate"
	defaultCloudEndpoint  = "https://openrouter.ai/api/v1/chat/completions"
)

// Default returns a Config populated with repository defaults. Insight mode
// starts disabled so a fresh install never makes a network call.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Log: Log{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Scan: Scan{
			TopEntries: defaultScanTopEntries,
		},
		Insight: Insight{
			Mode:           defaultInsightMode,
			CacheMode:      defaultCacheMode,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		LocalLLM: LLMEndpoint{
			Endpoint: defaultLocalEndpoint,
		},
		CloudLLM: LLMEndpoint{
			Endpoint: defaultCloudEndpoint,
		},
	}
}
