package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryActivity is one scheduled item within a day.
// Time, Cost and Duration are free text exactly as the model wrote them;
// costs are expected in USD but this is never checked after generation.
type ItineraryActivity struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

// ItineraryDay is the plan for a single day of a trip.
// Activities keep the order the model produced them in.
// An empty Title is displayed as "Day N" by clients.
type ItineraryDay struct {
	DayNumber  int                 `json:"day_number"`
	Title      string              `json:"title"`
	Activities []ItineraryActivity `json:"activities"`
}

// SavedDay is an ItineraryDay persisted under a trip.
type SavedDay struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	ItineraryDay
	CreatedAt time.Time `json:"created_at"`
}

// SharedTrip is the public view of a trip reached through its share token.
type SharedTrip struct {
	Trip Trip       `json:"trip"`
	Days []SavedDay `json:"days"`
}
