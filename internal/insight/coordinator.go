package insight

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"diskscope/internal/services"
)

// Provider is the single-operation capability every insight backend
// implements. Implementations are fail-soft: they always return an Insight
// within the composite deadline and surface failures through logs only.
type Provider interface {
	Describe(ctx context.Context, node Node, settings Settings) Insight
}

// Coordinator routes a describe request to the provider registered for the
// active mode. Registration happens once at wiring time; afterwards the
// coordinator is safe for concurrent use across many nodes.
type Coordinator struct {
	providers map[Mode]Provider
	logger    *slog.Logger
}

// NewCoordinator constructs an empty coordinator. A nil logger is replaced
// with a discard logger so logging can never fail a request.
func NewCoordinator(logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{providers: make(map[Mode]Provider), logger: logger}
}

// Register binds a provider to a mode, replacing any previous binding.
func (c *Coordinator) Register(mode Mode, provider Provider) {
	if provider == nil || mode == ModeDisabled {
		return
	}
	c.providers[mode] = provider
}

// Describe resolves exactly one provider from the settings mode and
// delegates to it. The call is total: a disabled mode, an unregistered mode,
// and every provider-level failure all resolve to Empty(). The settings
// value is never retained; each call carries its own snapshot.
func (c *Coordinator) Describe(ctx context.Context, node Node, settings Settings) Insight {
	if ctx == nil {
		ctx = context.Background()
	}
	if settings.Mode == ModeDisabled || settings.Mode == "" {
		return Empty()
	}
	provider, ok := c.providers[settings.Mode]
	if !ok {
		// An unregistered mode intentionally shares the disabled outcome;
		// only this log line distinguishes the two.
		c.logger.Debug("no insight provider registered",
			"mode", string(settings.Mode),
			"node", node.Name)
		return Empty()
	}
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithNodePath(ctx, node.DisplayPath)
	return provider.Describe(ctx, node, settings)
}
