package modelcatalog

import (
	"net/url"
	"strings"
)

// RewriteModelsURL turns a configured generation endpoint into the matching
// models-listing URL. Scheme, host, port, and query string are never
// altered; only the path is rewritten:
//
//   - a path already ending in /models (case-insensitive) stays unchanged
//   - a trailing /chat/completions segment becomes /models
//   - a /v1/chat segment becomes /v1/models
//   - otherwise v1/models is appended, inserting a separator only when the
//     existing path lacks a trailing slash
func RewriteModelsURL(raw string) string {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	path := parsed.Path
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, "/models"):
		// Already a models URL.
	case strings.HasSuffix(lower, "/chat/completions"):
		path = path[:len(path)-len("/chat/completions")] + "/models"
	case strings.Contains(lower, "/v1/chat"):
		idx := strings.Index(lower, "/v1/chat")
		path = path[:idx] + "/v1/models" + path[idx+len("/v1/chat"):]
	default:
		if strings.HasSuffix(path, "/") {
			path += "v1/models"
		} else {
			path += "/v1/models"
		}
	}

	parsed.Path = path
	return parsed.String()
}
