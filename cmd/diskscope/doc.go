// Command diskscope scans directory trees, reports the largest entries, and
// attaches AI-assisted purpose insights using the configured backend
// (offline heuristics, a local-network LLM, or a keyed cloud API).
package main
