package localllm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"diskscope/internal/insight"
	"diskscope/internal/logging"
	"diskscope/internal/services"
	"diskscope/internal/textutil"
)

const (
	providerName      = "local llm"
	summaryConfidence = 0.65
	rawSummaryLimit   = 300
	logSnippetLimit   = 200
)

// Provider talks to a self-hosted LLM endpoint on the local network. It is
// the fail-soft centerpiece of the insight subsystem: every failure mode
// collapses to insight.Empty() and is visible only in logs.
type Provider struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ insight.Provider = (*Provider)(nil)

// Option customizes the provider.
type Option func(*Provider)

// WithHTTPClient overrides the default HTTP client (useful for tests). The
// replacement should not carry a client-level timeout; expiration belongs to
// the per-call composite deadline.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// New constructs the provider. The transport deliberately has no
// client-level timeout: self-hosted models can take tens of seconds, so the
// per-call deadline (caller cancellation combined with the configured
// budget) governs the whole request including body consumption.
func New(logger *slog.Logger, opts ...Option) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Provider{
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.httpClient == nil {
		p.httpClient = &http.Client{}
	}
	return p
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse tolerates the wire formats of the common self-hosted
// backends: Ollama-style {response}, OpenAI chat and legacy completion
// choices, and several flat single-field dialects.
type generateResponse struct {
	Response string `json:"response"`
	Choices  []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Content string `json:"content"`
	Text    string `json:"text"`
	Output  string `json:"output"`
}

// Describe performs a single generation round trip for the node. It never
// returns an error: missing configuration, transport failures, timeouts, and
// unusable bodies all yield the canonical empty insight.
func (p *Provider) Describe(ctx context.Context, node insight.Node, settings insight.Settings) insight.Insight {
	logger := logging.WithContext(ctx, p.logger).With(logging.FieldComponent, providerName)

	endpoint := strings.TrimSpace(settings.LocalEndpoint)
	model := strings.TrimSpace(settings.LocalModel)
	if endpoint == "" || model == "" {
		logger.Debug("endpoint or model not configured, skipping describe", "node", node.Name)
		return insight.Empty()
	}

	prompt := BuildPrompt(node)

	// Composite deadline: caller cancellation and the configured budget,
	// whichever fires first, in force through body consumption.
	ctx, cancel := context.WithTimeout(ctx, settings.GenerationTimeout())
	defer cancel()

	logger.Debug("sending generation request",
		"endpoint", endpoint,
		"model", model,
		"timeout", settings.GenerationTimeout().String())

	body, err := p.generate(ctx, endpoint, model, settings.LocalAPIKey, prompt)
	if err != nil {
		logger.Warn("describe failed", "node", node.Name, "error", err)
		return insight.Empty()
	}

	summary := extractSummary(body)
	if summary == "" {
		logger.Debug("response contained no usable text", "node", node.Name)
		return insight.Empty()
	}

	logger.Debug("describe succeeded",
		"node", node.Name,
		"summary", textutil.Truncate(summary, logSnippetLimit))
	return insight.Insight{
		Category:   insight.Classify(summary),
		Summary:    summary,
		Confidence: summaryConfidence,
		Source:     providerName,
	}
}

func (p *Provider) generate(ctx context.Context, endpoint, model, apiKey, prompt string) ([]byte, error) {
	encoded, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return nil, services.Wrap(services.ErrParse, providerName, "encode request", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, providerName, "build request", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if key := strings.TrimSpace(apiKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		marker := services.ErrTransport
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, providerName, "send request", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, providerName, "read body", "", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := textutil.Truncate(strings.TrimSpace(string(body)), logSnippetLimit)
		return nil, services.Wrap(services.ErrTransport, providerName, "send request",
			fmt.Sprintf("http %d: %s", resp.StatusCode, snippet), nil)
	}
	return body, nil
}

// extractSummary probes the body against the known shapes in fixed priority:
// response, choices[].message.content, choices[].text, content, text,
// output. When the body is not structured data or every shape is blank, the
// raw body itself (truncated) becomes the summary, so a successful transport
// call never degrades to a generic result.
func extractSummary(body []byte) string {
	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if s := strings.TrimSpace(parsed.Response); s != "" {
			return s
		}
		for _, choice := range parsed.Choices {
			if s := strings.TrimSpace(choice.Message.Content); s != "" {
				return s
			}
		}
		for _, choice := range parsed.Choices {
			if s := strings.TrimSpace(choice.Text); s != "" {
				return s
			}
		}
		if s := strings.TrimSpace(parsed.Content); s != "" {
			return s
		}
		if s := strings.TrimSpace(parsed.Text); s != "" {
			return s
		}
		if s := strings.TrimSpace(parsed.Output); s != "" {
			return s
		}
	}
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}
	return textutil.Truncate(raw, rawSummaryLimit)
}
