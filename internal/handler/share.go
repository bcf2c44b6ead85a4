package handler

import (
	"net/http"

	"github.com/pkordes/tripweaver/internal/domain"
)

// sharedTripResponse is the public view of a trip. It carries no owner data.
type sharedTripResponse struct {
	Trip      tripResponse      `json:"trip"`
	Itinerary []domain.SavedDay `json:"itinerary"`
}

// GetSharedTrip handles GET /shared/{token}. Private and unknown trips are
// both reported as not found.
func (s *Server) GetSharedTrip(w http.ResponseWriter, r *http.Request) {
	token, err := pathUUID(r, "token")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	shared, err := s.svc.Shares.GetByToken(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err, "shared trip not found")
		return
	}
	writeJSON(w, http.StatusOK, sharedTripResponse{
		Trip:      tripToResponse(shared.Trip),
		Itinerary: savedDays(shared.Days),
	})
}
