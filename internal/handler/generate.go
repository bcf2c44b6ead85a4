package handler

import (
	"net/http"

	"github.com/pkordes/tripweaver/internal/domain"
)

// generateRequest accepts trip parameters either at the top level or wrapped
// under "tripDetails". The wrapped form wins when present.
type generateRequest struct {
	TripDetails *tripRequest `json:"tripDetails"`
	tripRequest
}

type itineraryResponse struct {
	Itinerary []domain.ItineraryDay `json:"itinerary"`
}

// GenerateItinerary handles POST /generate-itinerary.
// The itinerary is returned, not saved.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	req := body.tripRequest
	if body.TripDetails != nil {
		req = *body.TripDetails
	}

	days, err := s.svc.Generator.Generate(r.Context(), req.params())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse{Itinerary: days})
}
