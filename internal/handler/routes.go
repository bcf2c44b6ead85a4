package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the API router. auth guards every route that acts on a
// user's own trips or profile. metrics is served at GET /metrics when non-nil.
func (s *Server) Routes(auth func(http.Handler) http.Handler, metrics http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Post("/generate-itinerary", s.GenerateItinerary)
	r.Get("/shared/{token}", s.GetSharedTrip)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/profile", s.GetProfile)
		r.Patch("/profile", s.UpdateProfile)
		r.Post("/plans", s.CreatePlan)
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Patch("/status", s.UpdateTripStatus)
				r.Put("/visibility", s.SetTripVisibility)
				r.Post("/itinerary", s.GenerateTripItinerary)
				r.Get("/itinerary", s.ListTripItinerary)
				r.Get("/itinerary/export", s.ExportTripItinerary)
				r.Get("/budget", s.GetTripBudget)
			})
		})
	})

	return r
}
