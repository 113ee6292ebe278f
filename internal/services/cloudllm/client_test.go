package cloudllm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"diskscope/internal/insight"
)

func testSettings(endpoint string) insight.Settings {
	return insight.Settings{
		Mode:          insight.ModeCloudLLM,
		CloudEndpoint: endpoint,
		CloudModel:    "gpt-4o-mini",
		CloudAPIKey:   "sk-test",
	}
}

func testNode() insight.Node {
	return insight.Node{
		Name:        "temp",
		FullPath:    "/var/tmp",
		DisplayPath: "var/tmp",
		IsDir:       true,
		SizeBytes:   4096,
	}
}

func TestDescribeChatCompletion(t *testing.T) {
	var gotBody chatRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, `{"choices":[{"message":{"content":"Temporary files awaiting cleanup."}}]}`)
	}))
	defer server.Close()

	provider := New(nil, WithHTTPClient(server.Client()))
	got := provider.Describe(context.Background(), testNode(), testSettings(server.URL))

	if got.Summary != "Temporary files awaiting cleanup." {
		t.Fatalf("unexpected summary %q", got.Summary)
	}
	if got.Category != insight.CategoryTemporary {
		t.Fatalf("expected temporary classification, got %q", got.Category)
	}
	if got.Source != "cloud llm" {
		t.Fatalf("unexpected source %q", got.Source)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" || gotBody.Stream {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[0].Content, "Name: temp") {
		t.Fatalf("prompt not forwarded, got %q", gotBody.Messages[0].Content)
	}
}

func TestDescribeRequiresAPIKey(t *testing.T) {
	provider := New(nil, WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			t.Fatal("no request should be sent without an API key")
			return nil, nil
		}),
	}))

	settings := testSettings("https://api.example.com/v1/chat/completions")
	settings.CloudAPIKey = "  "
	if got := provider.Describe(context.Background(), testNode(), settings); got != insight.Empty() {
		t.Fatalf("missing key should yield empty insight, got %+v", got)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestDescribeErrorStatusYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := New(nil, WithHTTPClient(server.Client()))
	if got := provider.Describe(context.Background(), testNode(), testSettings(server.URL)); got != insight.Empty() {
		t.Fatalf("error status should yield empty insight, got %+v", got)
	}
}

func TestExtractSummaryRawFallback(t *testing.T) {
	if got := extractSummary([]byte("plain text answer")); got != "plain text answer" {
		t.Fatalf("plain text body should pass through, got %q", got)
	}
	long := strings.Repeat("y", 400)
	if got := extractSummary([]byte(long)); len(got) != 303 || !strings.HasSuffix(got, "...") {
		t.Fatalf("oversized raw body should truncate to 300 chars plus ellipsis, got %d chars", len(got))
	}
}

func TestBuildPromptMatchesLocalTemplate(t *testing.T) {
	node := insight.Node{Name: "logs", FullPath: "/var/log/app", IsDir: true, SizeBytes: 2048}
	prompt := buildPrompt(node)
	for _, want := range []string{
		"Name: logs",
		"Type: directory",
		"Path: /var/log/app",
		"Size: 2.00 KB",
		"Parent directory: /var/log",
		"Respond with plain text only.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
