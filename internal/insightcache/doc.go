// Package insightcache persists describe results in SQLite so repeated
// scans do not re-query a backend for unchanged nodes. Keys derive from the
// node path, optionally fingerprinted with the size, per the configured
// cache mode. A bounded in-process LRU fronts the database.
package insightcache
