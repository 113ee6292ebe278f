// Package cloudllm implements the insight provider for keyed cloud
// chat-completions endpoints (OpenRouter, DeepSeek, and other
// OpenAI-compatible APIs).
//
// The provider is deliberately symmetric with localllm: the same composite
// deadline (caller cancellation plus configured budget, default 300s), the
// same tolerant multi-shape response parsing with raw-body fallback, and the
// same fail-soft conversion of every error into the empty insight. It
// differs only in dialect (a chat messages array instead of a bare prompt)
// and in requiring an API key before any network attempt.
package cloudllm
