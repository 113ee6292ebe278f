package insightcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"diskscope/internal/config"
	"diskscope/internal/insight"
	"diskscope/internal/services"
)

func testStore(t *testing.T, cacheMode string) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(dir, "cache")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Insight.CacheMode = cacheMode

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleInsight() insight.Insight {
	return insight.Insight{
		Category:   insight.CategoryCache,
		Summary:    "Browser cache for Chromium profiles.",
		Confidence: 0.65,
		Source:     "local llm",
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := testStore(t, "path")
	ctx := context.Background()
	node := insight.Node{Name: "Cache", FullPath: "/home/dev/.cache", IsDir: true, SizeBytes: 1024}

	if err := store.Put(ctx, node, sampleInsight()); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, node)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sampleInsight() {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetMissReportsNotFound(t *testing.T) {
	store := testStore(t, "path")
	_, err := store.Get(context.Background(), insight.Node{FullPath: "/nowhere"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound marker, got %v", err)
	}
}

func TestPutSkipsEmptyInsights(t *testing.T) {
	store := testStore(t, "path")
	ctx := context.Background()
	node := insight.Node{Name: "x", FullPath: "/data/x"}

	if err := store.Put(ctx, node, insight.Empty()); err != nil {
		t.Fatalf("put empty: %v", err)
	}
	if _, err := store.Get(ctx, node); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("empty insight must not be persisted, got %v", err)
	}
}

func TestPutReplacesExistingEntry(t *testing.T) {
	store := testStore(t, "path")
	ctx := context.Background()
	node := insight.Node{Name: "logs", FullPath: "/var/log", IsDir: true}

	first := sampleInsight()
	if err := store.Put(ctx, node, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	second := insight.Insight{Category: insight.CategoryLog, Summary: "Rotated system logs.", Confidence: 0.5, Source: "heuristic", Restricted: true}
	if err := store.Put(ctx, node, second); err != nil {
		t.Fatalf("put update: %v", err)
	}
	got, err := store.Get(ctx, node)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != second {
		t.Fatalf("expected updated entry, got %+v", got)
	}
}

func TestKeyModes(t *testing.T) {
	pathStore := testStore(t, "path")
	sized := insight.Node{FullPath: "/data/blob", SizeBytes: 100}
	resized := insight.Node{FullPath: "/data/blob", SizeBytes: 200}
	if pathStore.Key(sized) != pathStore.Key(resized) {
		t.Fatal("path mode should ignore size changes")
	}

	sizeStore := testStore(t, "path-size")
	if sizeStore.Key(sized) == sizeStore.Key(resized) {
		t.Fatal("path-size mode should distinguish size changes")
	}

	scrubbed := insight.Node{DisplayPath: "project/cache", SizeBytes: 100}
	if sizeStore.Key(scrubbed) != "project/cache|100" {
		t.Fatalf("scrubbed nodes should key on display path, got %q", sizeStore.Key(scrubbed))
	}
}

func TestParseKeyMode(t *testing.T) {
	cases := map[string]KeyMode{
		"":          KeyModePath,
		"path":      KeyModePath,
		"bogus":     KeyModePath,
		"path-size": KeyModePathSize,
		"path_size": KeyModePathSize,
		"PathSize":  KeyModePathSize,
	}
	for raw, want := range cases {
		if got := ParseKeyMode(raw); got != want {
			t.Errorf("ParseKeyMode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestClearAndStats(t *testing.T) {
	store := testStore(t, "path")
	ctx := context.Background()

	entries := []struct {
		node  insight.Node
		value insight.Insight
	}{
		{insight.Node{FullPath: "/a"}, insight.Insight{Category: insight.CategoryCache, Summary: "a"}},
		{insight.Node{FullPath: "/b"}, insight.Insight{Category: insight.CategoryCache, Summary: "b"}},
		{insight.Node{FullPath: "/c"}, insight.Insight{Category: insight.CategoryLog, Summary: "c"}},
	}
	for _, e := range entries {
		if err := store.Put(ctx, e.node, e.value); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Entries != 3 {
		t.Fatalf("expected 3 entries, got %d", stats.Entries)
	}
	if stats.ByCategory[insight.CategoryCache] != 2 || stats.ByCategory[insight.CategoryLog] != 1 {
		t.Fatalf("unexpected per-category counts: %+v", stats.ByCategory)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats after clear: %v", err)
	}
	if stats.Entries != 0 {
		t.Fatalf("expected empty cache after clear, got %d entries", stats.Entries)
	}
	if _, err := store.Get(ctx, entries[0].node); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("clear must also drop the memory layer, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(dir, "cache")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	node := insight.Node{FullPath: "/var/tmp", IsDir: true}

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Put(context.Background(), node, sampleInsight()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(&cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), node)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != sampleInsight() {
		t.Fatalf("data lost across reopen: %+v", got)
	}
}
