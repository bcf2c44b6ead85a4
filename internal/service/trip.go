// Package service contains the business logic for the TripWeaver API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// TripService implements business logic for Trip operations.
// Every operation is scoped to the calling user.
type TripService struct {
	repo   repo.TripRepo
	shares ShareCache
	logger *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// shares may be nil when no share cache is configured.
func NewTripService(r repo.TripRepo, shares ShareCache, logger *slog.Logger) *TripService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripService{repo: r, shares: orNoop(shares), logger: logger}
}

// Create validates the trip parameters and persists a new draft trip owned by
// userID. Returns domain.ErrValidation if the parameters violate business rules.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, params domain.TripParameters) (domain.Trip, error) {
	if err := params.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	trip := domain.Trip{
		UserID:         userID,
		TripParameters: params,
		Status:         domain.TripStatusDraft,
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by userID.
// Returns domain.ErrNotFound if no such trip exists for that user.
func (s *TripService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of the user's trips, newest first, and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// UpdateStatus moves a trip to status.
// Returns domain.ErrValidation for an unknown status.
func (s *TripService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	if !status.Valid() {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %w: unknown status %q", domain.ErrValidation, status)
	}
	result, err := s.repo.UpdateStatus(ctx, userID, id, status)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %w", err)
	}
	s.invalidateShare(ctx, result.ShareToken)
	return result, nil
}

// SetVisibility makes a trip public or private. The share token is stable, so
// re-publishing a trip restores the same link.
func (s *TripService) SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error) {
	result, err := s.repo.SetVisibility(ctx, userID, id, isPublic)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetVisibility: %w", err)
	}
	s.invalidateShare(ctx, result.ShareToken)
	return result, nil
}

// Delete removes a trip and its saved itinerary.
// Returns domain.ErrNotFound if the trip does not exist for that user.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	trip, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.invalidateShare(ctx, trip.ShareToken)
	return nil
}

// invalidateShare drops a cached public view. A cache failure only means a
// stale entry lives until its TTL, so it is logged and not returned.
func (s *TripService) invalidateShare(ctx context.Context, token uuid.UUID) {
	if err := s.shares.Delete(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "share cache invalidation failed", slog.String("error", err.Error()))
	}
}
