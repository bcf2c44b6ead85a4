package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
)

const msgTripNotFound = "trip not found"

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type statusRequest struct {
	Status domain.TripStatus `json:"status"`
}

type visibilityRequest struct {
	IsPublic *bool `json:"is_public"`
}

type visibilityResponse struct {
	IsPublic   bool      `json:"is_public"`
	ShareToken uuid.UUID `json:"share_token"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	trip, err := s.svc.Trips.Create(r.Context(), userID, body.params())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(trip))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.svc.Trips.List(r.Context(), userID, params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       data,
		Pagination: pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	trip, err := s.svc.Trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTripStatus handles PATCH /trips/{id}/status.
func (s *Server) UpdateTripStatus(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	var body statusRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	trip, err := s.svc.Trips.UpdateStatus(r.Context(), userID, tripID, body.Status)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// SetTripVisibility handles PUT /trips/{id}/visibility.
func (s *Server) SetTripVisibility(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	var body visibilityRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if body.IsPublic == nil {
		s.writeError(w, r, fmt.Errorf("%w: is_public is required", domain.ErrValidation), "")
		return
	}

	trip, err := s.svc.Trips.SetVisibility(r.Context(), userID, tripID, *body.IsPublic)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, visibilityResponse{IsPublic: trip.IsPublic, ShareToken: trip.ShareToken})
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	if err := s.svc.Trips.Delete(r.Context(), userID, tripID); err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
