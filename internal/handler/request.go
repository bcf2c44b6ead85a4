package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/middleware"
)

// tripRequest is the JSON shape of trip parameters in request bodies.
// Dates are plain calendar dates ("2025-06-01").
type tripRequest struct {
	Destination       string                   `json:"destination"`
	BudgetLevel       domain.BudgetLevel       `json:"budget_level"`
	StartDate         openapi_types.Date       `json:"start_date"`
	EndDate           openapi_types.Date       `json:"end_date"`
	NumTravelers      int                      `json:"num_travelers"`
	AccommodationType domain.AccommodationType `json:"accommodation_type"`
	TravelMode        domain.TravelMode        `json:"travel_mode"`
	Activities        []string                 `json:"activities"`
}

func (t tripRequest) params() domain.TripParameters {
	return domain.TripParameters{
		Destination:       t.Destination,
		BudgetLevel:       t.BudgetLevel,
		StartDate:         t.StartDate.Time,
		EndDate:           t.EndDate.Time,
		NumTravelers:      t.NumTravelers,
		AccommodationType: t.AccommodationType,
		TravelMode:        t.TravelMode,
		Activities:        t.Activities,
	}
}

// tripResponse is the JSON shape of a trip returned to its owner.
type tripResponse struct {
	ID                uuid.UUID                `json:"id"`
	Destination       string                   `json:"destination"`
	BudgetLevel       domain.BudgetLevel       `json:"budget_level"`
	StartDate         openapi_types.Date       `json:"start_date"`
	EndDate           openapi_types.Date       `json:"end_date"`
	DurationDays      int                      `json:"duration_days"`
	NumTravelers      int                      `json:"num_travelers"`
	AccommodationType domain.AccommodationType `json:"accommodation_type"`
	TravelMode        domain.TravelMode        `json:"travel_mode"`
	Activities        []string                 `json:"activities"`
	Status            domain.TripStatus        `json:"status"`
	IsPublic          bool                     `json:"is_public"`
	ShareToken        uuid.UUID                `json:"share_token"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func tripToResponse(t domain.Trip) tripResponse {
	activities := t.Activities
	if activities == nil {
		activities = []string{}
	}
	return tripResponse{
		ID:                t.ID,
		Destination:       t.Destination,
		BudgetLevel:       t.BudgetLevel,
		StartDate:         openapi_types.Date{Time: t.StartDate},
		EndDate:           openapi_types.Date{Time: t.EndDate},
		DurationDays:      t.DurationDays(),
		NumTravelers:      t.NumTravelers,
		AccommodationType: t.AccommodationType,
		TravelMode:        t.TravelMode,
		Activities:        activities,
		Status:            t.Status,
		IsPublic:          t.IsPublic,
		ShareToken:        t.ShareToken,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func savedDays(days []domain.SavedDay) []domain.SavedDay {
	if days == nil {
		return []domain.SavedDay{}
	}
	return days
}

// decodeJSON reads a JSON request body into v. Oversized bodies keep their
// *http.MaxBytesError so they map to 413.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: malformed request body: %v", errBadRequest, err)
	}
	return nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Absent values are nil.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return &n, nil
}

// currentUser returns the authenticated user, writing 401 when the request
// reached a guarded handler without one.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	}
	return id, ok
}

// tripTarget resolves the user and the {id} path parameter shared by every
// per-trip route. It writes the error response itself when ok is false.
func (s *Server) tripTarget(w http.ResponseWriter, r *http.Request) (userID, tripID uuid.UUID, ok bool) {
	userID, ok = currentUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	tripID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, true
}
