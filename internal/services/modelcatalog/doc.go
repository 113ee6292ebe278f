// Package modelcatalog discovers the model identifiers a backend currently
// offers. It is invoked from configuration surfaces, never from the describe
// path, and follows its own rules: a fixed 10 second transport budget,
// protocol fallback (Ollama tags first, then the OpenAI-compatible models
// endpoint), a shared endpoint-rewrite rule, and best-effort semantics where
// every failure degrades to an empty list.
package modelcatalog
