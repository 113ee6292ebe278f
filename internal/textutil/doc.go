// Package textutil provides the small string helpers shared by prompt
// construction, response fallbacks, and CLI rendering: deterministic binary
// size formatting and rune-safe truncation.
package textutil
