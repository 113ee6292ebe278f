package insight

import (
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":          ModeDisabled,
		"disabled":  ModeDisabled,
		"nonsense":  ModeDisabled,
		"heuristic": ModeHeuristic,
		"OFFLINE":   ModeHeuristic,
		"local-llm": ModeLocalLLM,
		"local_llm": ModeLocalLLM,
		"Local":     ModeLocalLLM,
		"cloud-llm": ModeCloudLLM,
		"cloud":     ModeCloudLLM,
	}
	for raw, want := range cases {
		if got := ParseMode(raw); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestGenerationTimeoutDefaults(t *testing.T) {
	if got := (Settings{TimeoutSeconds: 0}).GenerationTimeout(); got != 300*time.Second {
		t.Fatalf("zero timeout should default to 300s, got %s", got)
	}
	if got := (Settings{TimeoutSeconds: -5}).GenerationTimeout(); got != 300*time.Second {
		t.Fatalf("negative timeout should default to 300s, got %s", got)
	}
	if got := (Settings{TimeoutSeconds: 45}).GenerationTimeout(); got != 45*time.Second {
		t.Fatalf("expected 45s, got %s", got)
	}
}

func TestEmptyInsight(t *testing.T) {
	empty := Empty()
	if empty.Category != CategoryUnknown {
		t.Fatalf("empty insight category = %q, want unknown", empty.Category)
	}
	if !empty.IsZero() {
		t.Fatal("empty insight should report IsZero")
	}
	if (Insight{Category: CategoryCache, Summary: "browser cache"}).IsZero() {
		t.Fatal("populated insight should not report IsZero")
	}
}
