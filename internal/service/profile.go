package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// ProfileService reads and updates the calling user's profile.
type ProfileService struct {
	repo repo.ProfileRepo
}

// NewProfileService constructs a ProfileService backed by the provided ProfileRepo.
func NewProfileService(r repo.ProfileRepo) *ProfileService {
	return &ProfileService{repo: r}
}

// Get returns the user's profile, or domain.DefaultProfile when none was saved.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultProfile(userID), nil
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return p, nil
}

// Update applies a partial change to the user's profile, creating it on first
// write. An update with no fields returns the current profile unchanged.
// Returns domain.ErrValidation for over-long fields or a bad avatar URL.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error) {
	if err := u.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Update: %w", err)
	}
	if u.Empty() {
		return s.Get(ctx, userID)
	}
	p, err := s.repo.Upsert(ctx, userID, u)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Update: %w", err)
	}
	return p, nil
}
