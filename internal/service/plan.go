package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// PlanService creates a trip and its itinerary as a single user action.
type PlanService struct {
	trips       repo.TripRepo
	itineraries *ItineraryService
	logger      *slog.Logger
}

// NewPlanService constructs a PlanService.
func NewPlanService(trips repo.TripRepo, itineraries *ItineraryService, logger *slog.Logger) *PlanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{trips: trips, itineraries: itineraries, logger: logger}
}

// Plan validates params, creates a draft trip, generates its itinerary and
// saves it.
//
// If generation or saving fails, the trip created here is deleted again and
// the original error is returned, so a failed plan leaves nothing behind. The
// deletion runs even when ctx has been cancelled.
func (s *PlanService) Plan(ctx context.Context, userID uuid.UUID, params domain.TripParameters) (domain.Trip, []domain.SavedDay, error) {
	if err := params.Validate(); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	trip, err := s.trips.Create(ctx, domain.Trip{UserID: userID, TripParameters: params, Status: domain.TripStatusDraft})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.PlanService.Plan: %w", err)
	}

	days, err := s.itineraries.generateAndSave(ctx, trip)
	if err != nil {
		if delErr := s.trips.Delete(context.WithoutCancel(ctx), userID, trip.ID); delErr != nil {
			s.logger.ErrorContext(ctx, "compensating trip delete failed",
				slog.String("trip_id", trip.ID.String()),
				slog.String("error", delErr.Error()),
			)
		}
		return domain.Trip{}, nil, fmt.Errorf("service.PlanService.Plan: %w", err)
	}
	return trip, days, nil
}
