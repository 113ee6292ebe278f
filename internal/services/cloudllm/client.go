package cloudllm

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
	providerName      = "cloud llm"
	summaryConfidence = 0.65
	rawSummaryLimit   = 300
	logSnippetLimit   = 200
)

// Provider talks to a keyed cloud chat-completions endpoint. It mirrors the
// local provider's contract: dual deadline, tolerant multi-shape parsing,
// and fail-soft conversion of every error into the empty insight. The only
// differences are the chat message dialect and the mandatory API key.
type Provider struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ insight.Provider = (*Provider)(nil)

// Option customizes the provider.
type Option func(*Provider)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// New constructs the provider. Like the local provider, the transport has no
// client-level timeout; the per-call composite deadline governs everything.
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

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatResponse tolerates the same response shapes the local provider
// accepts; cloud gateways are no more consistent than self-hosted ones.
type chatResponse struct {
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

// Describe performs a single chat round trip for the node. Missing
// configuration (endpoint, model, or key), transport failures, timeouts, and
// unusable bodies all yield the canonical empty insight.
func (p *Provider) Describe(ctx context.Context, node insight.Node, settings insight.Settings) insight.Insight {
	logger := logging.WithContext(ctx, p.logger).With(logging.FieldComponent, providerName)

	endpoint := strings.TrimSpace(settings.CloudEndpoint)
	model := strings.TrimSpace(settings.CloudModel)
	key := strings.TrimSpace(settings.CloudAPIKey)
	if endpoint == "" || model == "" || key == "" {
		logger.Debug("endpoint, model, or api key not configured, skipping describe", "node", node.Name)
		return insight.Empty()
	}

	prompt := buildPrompt(node)

	ctx, cancel := context.WithTimeout(ctx, settings.GenerationTimeout())
	defer cancel()

	body, err := p.complete(ctx, endpoint, model, key, prompt)
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

func (p *Provider) complete(ctx context.Context, endpoint, model, apiKey, prompt string) ([]byte, error) {
	payload := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, providerName, "encode request", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, providerName, "build request", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

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

func extractSummary(body []byte) string {
	var parsed chatResponse
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
