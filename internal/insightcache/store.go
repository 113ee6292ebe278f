package insightcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"diskscope/internal/config"
	"diskscope/internal/insight"
	"diskscope/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users then need to clear the cache database.
const schemaVersion = 1

// memoryCacheSize bounds the in-process LRU in front of sqlite.
const memoryCacheSize = 2048

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// KeyMode selects how cache keys are derived from a node.
type KeyMode string

const (
	// KeyModePath keys purely on the node path.
	KeyModePath KeyMode = "path"
	// KeyModePathSize adds the size as a fingerprint so entries that change
	// size are described again.
	KeyModePathSize KeyMode = "path-size"
)

// ParseKeyMode maps a configuration string onto a KeyMode, defaulting to
// path-only keying.
func ParseKeyMode(raw string) KeyMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "path-size", "path_size", "pathsize":
		return KeyModePathSize
	default:
		return KeyModePath
	}
}

// Store persists insights in SQLite with an LRU read-through layer. It is
// safe for concurrent use; the database carries WAL and busy-timeout
// pragmas, and schema creation is guarded by a file lock so concurrent CLI
// invocations cannot race first-open initialization.
type Store struct {
	db      *sql.DB
	path    string
	keyMode KeyMode
	mem     *lru.Cache[string, insight.Insight]
}

// Open initializes or connects to the insight cache database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "insights.db")

	lock := flock.New(dbPath + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	mem, err := lru.New[string, insight.Insight](memoryCacheSize)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init memory cache: %w", err)
	}

	store := &Store{
		db:      db,
		path:    dbPath,
		keyMode: ParseKeyMode(cfg.Insight.CacheMode),
		mem:     mem,
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'diskscope cache clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Key derives the cache key for a node according to the configured mode.
// Scrubbed nodes key on the display path, which is stable within a root.
func (s *Store) Key(node insight.Node) string {
	path := node.FullPath
	if path == "" {
		path = node.DisplayPath
	}
	if s.keyMode == KeyModePathSize {
		return fmt.Sprintf("%s|%d", path, node.SizeBytes)
	}
	return path
}

// Get returns the cached insight for a node. Misses are reported with the
// services.ErrNotFound marker.
func (s *Store) Get(ctx context.Context, node insight.Node) (insight.Insight, error) {
	key := s.Key(node)
	if cached, ok := s.mem.Get(key); ok {
		return cached, nil
	}

	var (
		result     insight.Insight
		category   string
		restricted int
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT category, summary, confidence, source, restricted
           FROM insights WHERE cache_key = ?`, key)
	err := row.Scan(&category, &result.Summary, &result.Confidence, &result.Source, &restricted)
	if errors.Is(err, sql.ErrNoRows) {
		return insight.Empty(), services.Wrap(services.ErrNotFound, "insight cache", "get", key, nil)
	}
	if err != nil {
		return insight.Empty(), fmt.Errorf("query insight: %w", err)
	}
	result.Category = insight.Category(category)
	result.Restricted = restricted != 0

	s.mem.Add(key, result)
	return result, nil
}

// Put stores an insight for a node, replacing any previous entry. Empty
// insights are not persisted; a failed describe should be retried on a
// later run, not remembered.
func (s *Store) Put(ctx context.Context, node insight.Node, value insight.Insight) error {
	if value.IsZero() {
		return nil
	}
	key := s.Key(node)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	restricted := 0
	if value.Restricted {
		restricted = 1
	}
	isDir := 0
	if node.IsDir {
		isDir = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO insights (
            cache_key, node_path, is_dir, size_bytes,
            category, summary, confidence, source, restricted,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(cache_key) DO UPDATE SET
            node_path = excluded.node_path,
            is_dir = excluded.is_dir,
            size_bytes = excluded.size_bytes,
            category = excluded.category,
            summary = excluded.summary,
            confidence = excluded.confidence,
            source = excluded.source,
            restricted = excluded.restricted,
            updated_at = excluded.updated_at`,
		key, node.DisplayPath, isDir, node.SizeBytes,
		string(value.Category), value.Summary, value.Confidence, value.Source, restricted,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("store insight: %w", err)
	}

	s.mem.Add(key, value)
	return nil
}

// Clear removes every cached insight.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM insights"); err != nil {
		return fmt.Errorf("clear insights: %w", err)
	}
	s.mem.Purge()
	return nil
}

// Stats summarizes cache contents for the CLI.
type Stats struct {
	Entries    int64
	ByCategory map[insight.Category]int64
	DBPath     string
}

// Stats counts cached insights per category.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByCategory: make(map[insight.Category]int64), DBPath: s.path}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(1) FROM insights GROUP BY category")
	if err != nil {
		return stats, fmt.Errorf("count insights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return stats, fmt.Errorf("scan insight count: %w", err)
		}
		stats.ByCategory[insight.Category(category)] = count
		stats.Entries += count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate insight counts: %w", err)
	}
	return stats, nil
}
