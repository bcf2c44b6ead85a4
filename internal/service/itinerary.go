package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// ItineraryGenerator produces itinerary days from trip parameters.
// *itinerary.Generator is the production implementation.
type ItineraryGenerator interface {
	Generate(ctx context.Context, params domain.TripParameters) ([]domain.ItineraryDay, error)
}

// ItineraryService generates and stores the itinerary of a user's trip.
type ItineraryService struct {
	trips       repo.TripRepo
	itineraries repo.ItineraryRepo
	gen         ItineraryGenerator
	shares      ShareCache
	logger      *slog.Logger
}

// NewItineraryService constructs an ItineraryService. shares may be nil.
func NewItineraryService(trips repo.TripRepo, itineraries repo.ItineraryRepo, gen ItineraryGenerator, shares ShareCache, logger *slog.Logger) *ItineraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItineraryService{trips: trips, itineraries: itineraries, gen: gen, shares: orNoop(shares), logger: logger}
}

// GenerateForTrip generates a fresh itinerary for a trip owned by userID and
// replaces any saved days with it. On failure the previously saved days are
// left untouched. Generation failures keep their *itinerary.Error in the
// error chain.
func (s *ItineraryService) GenerateForTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.GenerateForTrip: %w", err)
	}
	return s.generateAndSave(ctx, trip)
}

func (s *ItineraryService) generateAndSave(ctx context.Context, trip domain.Trip) ([]domain.SavedDay, error) {
	days, err := s.gen.Generate(ctx, trip.TripParameters)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.GenerateForTrip: %w", err)
	}
	saved, err := s.itineraries.ReplaceForTrip(ctx, trip.ID, days)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.GenerateForTrip: %w", err)
	}
	if err := s.shares.Delete(ctx, trip.ShareToken); err != nil {
		s.logger.WarnContext(ctx, "share cache invalidation failed", slog.String("error", err.Error()))
	}
	return saved, nil
}

// ListForTrip returns the saved days of a trip owned by userID, ordered by
// day number. A trip that was never generated has no days.
func (s *ItineraryService) ListForTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListForTrip: %w", err)
	}
	days, err := s.itineraries.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListForTrip: %w", err)
	}
	if days == nil {
		return []domain.SavedDay{}, nil
	}
	return days, nil
}
