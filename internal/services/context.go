package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	componentKey contextKey = "component"
	nodePathKey  contextKey = "node_path"
)

// WithRequestID annotates context with a correlation identifier for one
// describe or catalog request.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithComponent annotates context with the subsystem component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(componentKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithNodePath annotates context with the display path of the node being
// described so log lines can be traced back to a tree entry.
func WithNodePath(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, nodePathKey, path)
}

// NodePathFromContext returns the node display path if present.
func NodePathFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(nodePathKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
