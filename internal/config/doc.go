// Package config loads and validates the diskscope TOML configuration. It
// owns the defaults, tilde expansion, environment overrides (including a
// best-effort .env overlay), and the InsightSettings snapshot the insight
// subsystem consumes by value on every call.
package config
