// Package heuristic implements the offline insight provider: coarse
// classification from well-known path segments, file extensions, and the
// shared bilingual keyword table. Results carry the Restricted flag because
// they are produced without any network access.
package heuristic
