// Package localllm implements the insight provider for self-hosted LLM
// endpoints reachable on the local network (Ollama, LM Studio,
// OpenAI-compatible gateways, and similar).
//
// # Request Shape
//
// One HTTP POST per describe call with body {"model", "prompt", "stream":
// false}. A bearer token is attached only when a key is configured.
// Streaming is never requested.
//
// # Deadlines
//
// Two deadlines apply simultaneously: the caller's context and a timer
// seeded from the configured timeout (default 300s when unset or
// non-positive). The transport itself carries no timeout, so the composite
// deadline stays in force through body consumption.
//
// # Response Tolerance
//
// Responses are probed against five shapes in fixed priority (response,
// choices message content, choices text, content, text, output); when none
// matches, the raw body (truncated to 300 characters) becomes the summary.
// Summaries are classified into coarse categories by bilingual keyword
// matching with a fixed 0.65 confidence.
//
// # Failure Semantics
//
// Every failure (missing configuration, transport error, non-2xx status,
// cancellation, timeout, blank output) converts to the same empty Unknown
// insight. Causes are distinguishable only in logs; one failing endpoint
// never escalates into an application error or stalls a multi-node batch.
package localllm
