package handler

import "net/http"

// GetTripBudget handles GET /trips/{id}/budget.
func (s *Server) GetTripBudget(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	estimate, err := s.svc.Budgets.EstimateForTrip(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, estimate)
}
