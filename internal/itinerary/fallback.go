package itinerary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkordes/tripweaver/internal/domain"
)

// Completer is a single provider as seen by the Orchestrator.
// *ProviderClient is the production implementation.
type Completer interface {
	Name() string
	Mode() OutputMode
	Complete(ctx context.Context, p Prompts) (string, error)
}

// ProvidersConfig is the provider selection resolved once from the
// environment. A nil entry, or one without an API key, is not configured.
type ProvidersConfig struct {
	Primary   *ProviderConfig
	Secondary *ProviderConfig
}

// Completion is the raw text returned by the provider that succeeded.
type Completion struct {
	Content  string
	Provider string
}

// Orchestrator runs the primary-then-secondary provider chain. It makes at
// most two sequential calls per generation and never races providers.
type Orchestrator struct {
	primary   Completer
	secondary Completer
	metrics   *Metrics
	logger    *slog.Logger
}

// NewOrchestrator builds provider clients for every configured entry in cfg.
func NewOrchestrator(cfg ProvidersConfig, hc *http.Client, m *Metrics, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{metrics: m, logger: logger}
	if configured(cfg.Primary) {
		o.primary = NewProviderClient(*cfg.Primary, hc, m, logger)
	}
	if configured(cfg.Secondary) {
		o.secondary = NewProviderClient(*cfg.Secondary, hc, m, logger)
	}
	return o
}

func configured(c *ProviderConfig) bool {
	return c != nil && c.APIKey != ""
}

// Configured reports whether at least one provider can be called.
func (o *Orchestrator) Configured() bool {
	return o.primary != nil || o.secondary != nil
}

// GenerateRaw asks the providers for an itinerary and returns the first
// non-empty completion.
//
// Without a primary the secondary is called directly. A primary failure moves
// to the secondary only when it is rate limited, rejected with 400 or failed
// in transport, and only while ctx is still live. Any other failure, or any
// failure of the last provider tried, is returned as is.
func (o *Orchestrator) GenerateRaw(ctx context.Context, params domain.TripParameters, durationDays int) (Completion, error) {
	first, next := o.primary, o.secondary
	if first == nil {
		first, next = o.secondary, nil
	}
	if first == nil {
		return Completion{}, &Error{Kind: KindConfiguration, Err: ErrNoProvider}
	}

	content, err := o.call(ctx, first, params, durationDays)
	if err == nil {
		return Completion{Content: content, Provider: first.Name()}, nil
	}
	if next == nil || ctx.Err() != nil || !KindOf(err).retryable() {
		return Completion{}, err
	}

	o.logger.WarnContext(ctx, "primary provider failed, falling back",
		slog.String("provider", first.Name()),
		slog.String("fallback", next.Name()),
		slog.String("kind", KindOf(err).String()),
	)
	o.metrics.observeFallback()

	content, err = o.call(ctx, next, params, durationDays)
	if err != nil {
		return Completion{}, err
	}
	return Completion{Content: content, Provider: next.Name()}, nil
}

func (o *Orchestrator) call(ctx context.Context, c Completer, params domain.TripParameters, durationDays int) (string, error) {
	o.logger.InfoContext(ctx, "generating itinerary",
		slog.String("provider", c.Name()),
		slog.String("destination", params.Destination),
		slog.Int("duration_days", durationDays),
	)
	return c.Complete(ctx, BuildPrompts(params, durationDays, c.Mode()))
}
