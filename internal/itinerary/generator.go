// Package itinerary turns trip parameters into a day-by-day itinerary by
// prompting an OpenAI-compatible LLM provider, falling back to a secondary
// provider on recoverable failures, and normalizing the returned JSON.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/tripweaver/internal/domain"
)

// maxLoggedRaw caps how much of an unusable completion is written to the log.
const maxLoggedRaw = 512

// rawGenerator is satisfied by *Orchestrator.
type rawGenerator interface {
	GenerateRaw(ctx context.Context, params domain.TripParameters, durationDays int) (Completion, error)
}

// Generator is the entry point for itinerary generation. It is stateless and
// safe for concurrent use.
type Generator struct {
	providers rawGenerator
	metrics   *Metrics
	logger    *slog.Logger
}

// NewGenerator constructs a Generator that calls the providers in o.
func NewGenerator(o *Orchestrator, m *Metrics, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{providers: o, metrics: m, logger: logger}
}

// Generate validates params, asks the providers for an itinerary and returns
// the normalized days. Invalid params yield an error wrapping
// domain.ErrValidation; every other failure is an *Error.
func (g *Generator) Generate(ctx context.Context, params domain.TripParameters) (days []domain.ItineraryDay, err error) {
	defer func() {
		if !errors.Is(err, domain.ErrValidation) {
			g.metrics.observeGeneration(err)
		}
	}()

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("itinerary.Generator.Generate: %w", err)
	}
	durationDays := params.DurationDays()

	completion, err := g.providers.GenerateRaw(ctx, params, durationDays)
	if err != nil {
		return nil, err
	}

	days, err = Normalize(completion.Content)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Provider = completion.Provider
		}
		g.logger.ErrorContext(ctx, "unusable completion",
			slog.String("provider", completion.Provider),
			slog.String("kind", KindOf(err).String()),
			slog.String("raw", truncate(completion.Content, maxLoggedRaw)),
		)
		return nil, err
	}

	if len(days) != durationDays {
		g.logger.WarnContext(ctx, "itinerary day count differs from trip length",
			slog.String("provider", completion.Provider),
			slog.String("destination", params.Destination),
			slog.Int("duration_days", durationDays),
			slog.Int("days_returned", len(days)),
		)
	}
	g.logger.InfoContext(ctx, "itinerary generated",
		slog.String("provider", completion.Provider),
		slog.String("destination", params.Destination),
		slog.Int("duration_days", durationDays),
	)
	return days, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
