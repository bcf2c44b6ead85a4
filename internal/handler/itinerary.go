package handler

import (
	"net/http"

	"github.com/pkordes/tripweaver/internal/domain"
)

type savedItineraryResponse struct {
	Itinerary []domain.SavedDay `json:"itinerary"`
}

// GenerateTripItinerary handles POST /trips/{id}/itinerary.
// It replaces any itinerary already saved for the trip.
func (s *Server) GenerateTripItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	days, err := s.svc.Itineraries.GenerateForTrip(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, savedItineraryResponse{Itinerary: savedDays(days)})
}

// ListTripItinerary handles GET /trips/{id}/itinerary.
func (s *Server) ListTripItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	days, err := s.svc.Itineraries.ListForTrip(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, savedItineraryResponse{Itinerary: savedDays(days)})
}
