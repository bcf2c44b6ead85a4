package service_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
	"github.com/pkordes/tripweaver/internal/service"
)

// ---- mock repos ------------------------------------------------------------

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create                func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID               func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	getPublicByShareToken func(ctx context.Context, token uuid.UUID) (domain.Trip, error)
	listPaged             func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	updateStatus          func(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	setVisibility         func(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error)
	delete                func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) GetPublicByShareToken(ctx context.Context, token uuid.UUID) (domain.Trip, error) {
	return m.getPublicByShareToken(ctx, token)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, userID, p)
}
func (m *mockTripRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	return m.updateStatus(ctx, userID, id, status)
}
func (m *mockTripRepo) SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error) {
	return m.setVisibility(ctx, userID, id, isPublic)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
type mockItineraryRepo struct {
	replaceForTrip func(ctx context.Context, tripID uuid.UUID, days []domain.ItineraryDay) ([]domain.SavedDay, error)
	listByTripID   func(ctx context.Context, tripID uuid.UUID) ([]domain.SavedDay, error)
}

func (m *mockItineraryRepo) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, days []domain.ItineraryDay) ([]domain.SavedDay, error) {
	return m.replaceForTrip(ctx, tripID, days)
}
func (m *mockItineraryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.SavedDay, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// mockProfileRepo is a hand-written test double for repo.ProfileRepo.
type mockProfileRepo struct {
	getByUserID func(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	upsert      func(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error)
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return m.getByUserID(ctx, userID)
}
func (m *mockProfileRepo) Upsert(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error) {
	return m.upsert(ctx, userID, u)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

// ---- mock collaborators ----------------------------------------------------

type mockGenerator struct {
	generate func(ctx context.Context, params domain.TripParameters) ([]domain.ItineraryDay, error)
}

func (m *mockGenerator) Generate(ctx context.Context, params domain.TripParameters) ([]domain.ItineraryDay, error) {
	return m.generate(ctx, params)
}

var _ service.ItineraryGenerator = (*mockGenerator)(nil)

// mockShareCache records deletions and serves entries from a map.
type mockShareCache struct {
	entries map[uuid.UUID][]domain.SavedDay
	deleted []uuid.UUID
	err     error
}

func (m *mockShareCache) Get(_ context.Context, token uuid.UUID) ([]domain.SavedDay, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.entries[token]
	return v, ok, nil
}
func (m *mockShareCache) Set(_ context.Context, token uuid.UUID, v []domain.SavedDay) error {
	if m.err != nil {
		return m.err
	}
	if m.entries == nil {
		m.entries = map[uuid.UUID][]domain.SavedDay{}
	}
	m.entries[token] = v
	return nil
}
func (m *mockShareCache) Delete(_ context.Context, token uuid.UUID) error {
	m.deleted = append(m.deleted, token)
	return m.err
}

var _ service.ShareCache = (*mockShareCache)(nil)

// ---- helpers ---------------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validParams() domain.TripParameters {
	return domain.TripParameters{
		Destination:       "Paris",
		BudgetLevel:       domain.BudgetLevelModerate,
		StartDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		NumTravelers:      2,
		AccommodationType: domain.AccommodationHotel,
		TravelMode:        domain.TravelModeTrain,
		Activities:        []string{"museums", "food"},
	}
}

func storedTrip(userID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:             uuid.New(),
		UserID:         userID,
		TripParameters: validParams(),
		Status:         domain.TripStatusDraft,
		ShareToken:     uuid.New(),
	}
}

func generatedDays() []domain.ItineraryDay {
	return []domain.ItineraryDay{
		{DayNumber: 1, Title: "Louvre", Activities: []domain.ItineraryActivity{{Time: "09:00", Title: "Louvre", Description: "Art"}}},
		{DayNumber: 2, Title: "Montmartre", Activities: []domain.ItineraryActivity{{Time: "10:00", Title: "Walk", Description: "Hill"}}},
		{DayNumber: 3, Title: "Versailles", Activities: []domain.ItineraryActivity{{Time: "08:00", Title: "Palace", Description: "Day trip"}}},
	}
}

// saveAll is a replaceForTrip implementation that echoes days back as saved rows.
func saveAll(_ context.Context, tripID uuid.UUID, days []domain.ItineraryDay) ([]domain.SavedDay, error) {
	out := make([]domain.SavedDay, 0, len(days))
	for _, d := range days {
		out = append(out, domain.SavedDay{ID: uuid.New(), TripID: tripID, ItineraryDay: d})
	}
	return out, nil
}
