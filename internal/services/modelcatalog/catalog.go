package modelcatalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"diskscope/internal/logging"
	"diskscope/internal/services"
	"diskscope/internal/textutil"
)

const (
	serviceName     = "model catalog"
	ollamaTagsPath  = "/api/tags"
	logSnippetLimit = 200

	// catalogTimeout bounds every discovery call. Catalog listing is a
	// lightweight UI-facing call and must stay snappy, unlike generation.
	catalogTimeout = 10 * time.Second
)

// Service discovers the model identifiers a backend currently offers. Both
// entry points are best-effort: internal failures are logged and degrade to
// an empty list, never an error.
type Service struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the service.
type Option func(*Service)

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// New constructs the catalog service with its own fixed-budget transport,
// independent of the generation transport and of caller deadlines.
func New(logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		httpClient: &http.Client{Timeout: catalogTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: catalogTimeout}
	}
	return s
}

// ListCloud fetches the models a keyed cloud endpoint offers by rewriting
// the generation endpoint into its models URL. Failures yield an empty list.
func (s *Service) ListCloud(ctx context.Context, endpoint, apiKey string) []string {
	logger := logging.WithContext(ctx, s.logger).With(logging.FieldComponent, serviceName)
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		logger.Debug("cloud endpoint not configured, skipping catalog fetch")
		return nil
	}

	models, err := s.fetchOpenAIModels(ctx, RewriteModelsURL(endpoint), apiKey)
	if err != nil {
		logger.Warn("cloud catalog fetch failed", "endpoint", endpoint, "error", err)
		return nil
	}
	logger.Debug("cloud catalog fetched", "endpoint", endpoint, "count", len(models))
	return models
}

// ListLocal fetches the models a local backend offers. It tries the
// Ollama-style tags endpoint first and falls back to the OpenAI-compatible
// models endpoint; the first protocol that produces a structurally valid
// response wins. Both failing yields an empty list.
func (s *Service) ListLocal(ctx context.Context, baseURL, apiKey string) []string {
	logger := logging.WithContext(ctx, s.logger).With(logging.FieldComponent, serviceName)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		logger.Debug("local endpoint not configured, skipping catalog fetch")
		return nil
	}

	models, ollamaErr := s.fetchOllamaModels(ctx, baseURL)
	if ollamaErr == nil {
		logger.Debug("local catalog fetched via ollama tags", "endpoint", baseURL, "count", len(models))
		return models
	}
	logger.Debug("ollama tags fetch failed, trying openai models", "endpoint", baseURL, "error", ollamaErr)

	models, openaiErr := s.fetchOpenAIModels(ctx, RewriteModelsURL(baseURL), apiKey)
	if openaiErr != nil {
		logger.Warn("local catalog fetch failed on both protocols",
			"endpoint", baseURL,
			"ollama_error", ollamaErr,
			"openai_error", openaiErr)
		return nil
	}
	logger.Debug("local catalog fetched via openai models", "endpoint", baseURL, "count", len(models))
	return models
}

func (s *Service) fetchOllamaModels(ctx context.Context, baseURL string) ([]string, error) {
	tagsURL, err := tagsListingURL(baseURL)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, serviceName, "build tags url", baseURL, err)
	}
	body, err := s.get(ctx, tagsURL, "")
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Models *[]struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, services.Wrap(services.ErrParse, serviceName, "decode tags response", "", err)
	}
	if parsed.Models == nil {
		return nil, services.Wrap(services.ErrParse, serviceName, "decode tags response", "missing models field", nil)
	}
	names := make([]string, 0, len(*parsed.Models))
	for _, model := range *parsed.Models {
		if name := strings.TrimSpace(model.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Service) fetchOpenAIModels(ctx context.Context, modelsURL, apiKey string) ([]string, error) {
	body, err := s.get(ctx, modelsURL, apiKey)
	if err != nil {
		return nil, err
	}
	ids, err := parseModelIDs(body)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, serviceName, "decode models response", "", err)
	}
	return ids, nil
}

func (s *Service) get(ctx context.Context, rawURL, apiKey string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, serviceName, "build request", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if key := strings.TrimSpace(apiKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, serviceName, "send request", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, serviceName, "read body", rawURL, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := textutil.Truncate(strings.TrimSpace(string(body)), logSnippetLimit)
		return nil, services.Wrap(services.ErrTransport, serviceName, "send request",
			fmt.Sprintf("http %d: %s", resp.StatusCode, snippet), nil)
	}
	return body, nil
}

// tagsListingURL points the well-known Ollama tags path at the endpoint's
// base address. The configured value is usually a full generation endpoint
// (e.g. http://host:11434/api/generate), so the path is replaced, not
// extended.
func tagsListingURL(baseURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", err
	}
	parsed.Path = ollamaTagsPath
	parsed.RawQuery = ""
	return parsed.String(), nil
}

// parseModelIDs accepts the two OpenAI-compatible catalog grammars: an
// object with a data array, or a bare top-level array whose elements are
// objects exposing an id or plain strings. Non-matching elements are
// skipped, not fatal.
func parseModelIDs(body []byte) ([]string, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return idsFromElements(envelope.Data), nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return idsFromElements(bare), nil
	}

	return nil, errors.New("body matches neither catalog grammar")
}

func idsFromElements(elements []json.RawMessage) []string {
	ids := make([]string, 0, len(elements))
	for _, element := range elements {
		var withID struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(element, &withID); err == nil {
			if id := strings.TrimSpace(withID.ID); id != "" {
				ids = append(ids, id)
				continue
			}
		}
		var plain string
		if err := json.Unmarshal(element, &plain); err == nil {
			if id := strings.TrimSpace(plain); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
