// Package logging assembles the structured slog loggers used across
// diskscope. It owns the console and JSON handlers, level and output
// plumbing, and context-aware helpers that tag log lines with correlation
// IDs and node paths. A no-op logger is provided for tests and for wiring
// code that must never fail.
package logging
