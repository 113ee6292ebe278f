// Package scanner walks directory trees into the read-only nodes the
// insight subsystem consumes, aggregating directory sizes and optionally
// scrubbing absolute paths for privacy. It also reports volume statistics
// for the filesystem hosting a scan root.
package scanner
