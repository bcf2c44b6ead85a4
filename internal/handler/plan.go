package handler

import (
	"net/http"

	"github.com/pkordes/tripweaver/internal/domain"
)

type planResponse struct {
	Trip      tripResponse      `json:"trip"`
	Itinerary []domain.SavedDay `json:"itinerary"`
}

// CreatePlan handles POST /plans: create the trip, generate its itinerary
// and save both. On a generation failure no trip is left behind.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	trip, days, err := s.svc.Plans.Plan(r.Context(), userID, body.params())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, planResponse{Trip: tripToResponse(trip), Itinerary: savedDays(days)})
}
