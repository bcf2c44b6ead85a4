// Package handler implements the HTTP handlers for the TripWeaver API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, generate.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
)

// Generator produces an itinerary from trip parameters without persisting it.
type Generator interface {
	Generate(ctx context.Context, params domain.TripParameters) ([]domain.ItineraryDay, error)
}

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, params domain.TripParameters) (domain.Trip, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ItineraryServicer generates and reads the saved itinerary of a trip.
type ItineraryServicer interface {
	GenerateForTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error)
	ListForTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.SavedDay, error)
}

// PlanServicer creates a trip and its itinerary in one step.
type PlanServicer interface {
	Plan(ctx context.Context, userID uuid.UUID, params domain.TripParameters) (domain.Trip, []domain.SavedDay, error)
}

type BudgetServicer interface {
	EstimateForTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.BudgetEstimate, error)
}

type ShareServicer interface {
	GetByToken(ctx context.Context, token uuid.UUID) (domain.SharedTrip, error)
}

// ExportServicer flattens a saved itinerary into export rows.
type ExportServicer interface {
	Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// ProfileServicer reads and updates the caller's profile.
type ProfileServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error)
}

// Services groups the dependencies of Server. Tests set only the fields the
// handlers under test use.
type Services struct {
	Generator   Generator
	Trips       TripServicer
	Itineraries ItineraryServicer
	Plans       PlanServicer
	Budgets     BudgetServicer
	Shares      ShareServicer
	Export      ExportServicer
	Profiles    ProfileServicer
}

// Server holds the handler dependencies. Wire it in main.go via Routes.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}
