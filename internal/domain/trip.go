// Package domain contains the core data types for the TripWeaver API.
// It is imported by every other internal package (repo, service, itinerary,
// handler) and depends only on uuid.
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BudgetLevel is the spending tier a trip is planned for.
type BudgetLevel string

const (
	BudgetLevelBudget   BudgetLevel = "budget"
	BudgetLevelModerate BudgetLevel = "moderate"
	BudgetLevelLuxury   BudgetLevel = "luxury"
)

// Valid reports whether b is one of the known budget tiers.
func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetLevelBudget, BudgetLevelModerate, BudgetLevelLuxury:
		return true
	}
	return false
}

// AccommodationType is where the travellers sleep.
type AccommodationType string

const (
	AccommodationHotel   AccommodationType = "hotel"
	AccommodationHostel  AccommodationType = "hostel"
	AccommodationAirbnb  AccommodationType = "airbnb"
	AccommodationResort  AccommodationType = "resort"
	AccommodationCamping AccommodationType = "camping"
)

// Valid reports whether a is one of the known accommodation types.
func (a AccommodationType) Valid() bool {
	switch a {
	case AccommodationHotel, AccommodationHostel, AccommodationAirbnb, AccommodationResort, AccommodationCamping:
		return true
	}
	return false
}

// TravelMode is how the travellers get to (and around) the destination.
type TravelMode string

const (
	TravelModeFlight TravelMode = "flight"
	TravelModeTrain  TravelMode = "train"
	TravelModeCar    TravelMode = "car"
	TravelModeBus    TravelMode = "bus"
)

// Valid reports whether m is one of the known travel modes.
func (m TravelMode) Valid() bool {
	switch m {
	case TravelModeFlight, TravelModeTrain, TravelModeCar, TravelModeBus:
		return true
	}
	return false
}

// TripStatus is the lifecycle state a user assigns to a trip.
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusConfirmed TripStatus = "confirmed"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Valid reports whether s is one of the known trip statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusDraft, TripStatusConfirmed, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// TripParameters are the user's preferences that drive itinerary generation.
// StartDate and EndDate are calendar dates; only their year, month and day
// are significant.
type TripParameters struct {
	Destination       string            `json:"destination"`
	BudgetLevel       BudgetLevel       `json:"budget_level"`
	StartDate         time.Time         `json:"start_date"`
	EndDate           time.Time         `json:"end_date"`
	NumTravelers      int               `json:"num_travelers"`
	AccommodationType AccommodationType `json:"accommodation_type"`
	TravelMode        TravelMode        `json:"travel_mode"`
	Activities        []string          `json:"activities"`
}

// Validate enforces the business rules on trip parameters.
// Every failure wraps ErrValidation.
func (p TripParameters) Validate() error {
	if strings.TrimSpace(p.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if !p.BudgetLevel.Valid() {
		return fmt.Errorf("%w: unknown budget_level %q", ErrValidation, p.BudgetLevel)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if calendarDate(p.EndDate).Before(calendarDate(p.StartDate)) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}
	if p.NumTravelers < 1 {
		return fmt.Errorf("%w: num_travelers must be at least 1", ErrValidation)
	}
	if !p.AccommodationType.Valid() {
		return fmt.Errorf("%w: unknown accommodation_type %q", ErrValidation, p.AccommodationType)
	}
	if !p.TravelMode.Valid() {
		return fmt.Errorf("%w: unknown travel_mode %q", ErrValidation, p.TravelMode)
	}
	interests := 0
	for _, a := range p.Activities {
		if strings.TrimSpace(a) != "" {
			interests++
		}
	}
	if interests == 0 {
		return fmt.Errorf("%w: at least one activity is required", ErrValidation)
	}
	return nil
}

// DurationDays returns the trip length in days: ceil(end - start) + 1.
// Both ends are inclusive, so a same-day trip lasts one day. The result is
// never less than 1.
func (p TripParameters) DurationDays() int {
	return DurationDays(p.StartDate, p.EndDate)
}

// DurationDays computes the inclusive number of calendar days between start
// and end. Dates are compared as UTC calendar dates so that DST transitions
// and wall-clock offsets never shorten or stretch a trip.
func DurationDays(start, end time.Time) int {
	diff := calendarDate(end).Sub(calendarDate(start))
	days := int(math.Ceil(diff.Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Trip is a user's planned journey. Trips own their saved itinerary days;
// deleting a trip deletes its days.
type Trip struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	TripParameters
	Status     TripStatus `json:"status"`
	ShareToken uuid.UUID  `json:"share_token"`
	IsPublic   bool       `json:"is_public"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
