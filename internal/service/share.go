package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// ShareCache caches the saved days of shared trips by share token. It never
// decides visibility. *cache.ShareCache is the Redis implementation.
type ShareCache interface {
	Get(ctx context.Context, token uuid.UUID) ([]domain.SavedDay, bool, error)
	Set(ctx context.Context, token uuid.UUID, days []domain.SavedDay) error
	Delete(ctx context.Context, token uuid.UUID) error
}

// noopShareCache is used when no cache is configured: every Get misses.
type noopShareCache struct{}

func (noopShareCache) Get(context.Context, uuid.UUID) ([]domain.SavedDay, bool, error) {
	return nil, false, nil
}
func (noopShareCache) Set(context.Context, uuid.UUID, []domain.SavedDay) error { return nil }
func (noopShareCache) Delete(context.Context, uuid.UUID) error                 { return nil }

func orNoop(c ShareCache) ShareCache {
	if c == nil {
		return noopShareCache{}
	}
	return c
}

// ShareService serves publicly shared trips to unauthenticated readers.
type ShareService struct {
	trips       repo.TripRepo
	itineraries repo.ItineraryRepo
	cache       ShareCache
	logger      *slog.Logger
}

// NewShareService constructs a ShareService. c may be nil.
func NewShareService(trips repo.TripRepo, itineraries repo.ItineraryRepo, c ShareCache, logger *slog.Logger) *ShareService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShareService{trips: trips, itineraries: itineraries, cache: orNoop(c), logger: logger}
}

// GetByToken returns the trip behind a share token together with its saved
// days. Returns domain.ErrNotFound for unknown tokens and for private trips.
// The trip row is read on every call so a trip made private is never served
// from the cache; only the days are cached. Cache failures fall through to
// the database.
func (s *ShareService) GetByToken(ctx context.Context, token uuid.UUID) (domain.SharedTrip, error) {
	trip, err := s.trips.GetPublicByShareToken(ctx, token)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.ShareService.GetByToken: %w", err)
	}

	days, ok, err := s.cache.Get(ctx, token)
	if err != nil {
		s.logger.WarnContext(ctx, "share cache read failed", slog.String("error", err.Error()))
	}
	if !ok {
		days, err = s.itineraries.ListByTripID(ctx, trip.ID)
		if err != nil {
			return domain.SharedTrip{}, fmt.Errorf("service.ShareService.GetByToken: %w", err)
		}
		if err := s.cache.Set(ctx, token, days); err != nil {
			s.logger.WarnContext(ctx, "share cache write failed", slog.String("error", err.Error()))
		}
	}
	if days == nil {
		days = []domain.SavedDay{}
	}
	return domain.SharedTrip{Trip: trip, Days: days}, nil
}
