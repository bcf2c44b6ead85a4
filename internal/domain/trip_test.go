package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validParams() domain.TripParameters {
	return domain.TripParameters{
		Destination:       "Paris, France",
		BudgetLevel:       domain.BudgetLevelModerate,
		StartDate:         date(2025, 6, 1),
		EndDate:           date(2025, 6, 3),
		NumTravelers:      2,
		AccommodationType: domain.AccommodationHotel,
		TravelMode:        domain.TravelModeFlight,
		Activities:        []string{"Sightseeing", "Food & Dining"},
	}
}

func TestDurationDays(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", date(2025, 6, 1), date(2025, 6, 1), 1},
		{"three days", date(2025, 6, 1), date(2025, 6, 3), 3},
		{"across month", date(2025, 1, 30), date(2025, 2, 2), 4},
		{"across leap day", date(2024, 2, 28), date(2024, 3, 1), 3},
		{"end before start clamps to one", date(2025, 6, 3), date(2025, 6, 1), 1},
		{"time of day ignored", date(2025, 6, 1).Add(23 * time.Hour), date(2025, 6, 2), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.DurationDays(tc.start, tc.end))
		})
	}
}

func TestDurationDays_AcrossDSTInLocalZone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 2025-03-30 is the spring-forward day in Paris; the wall-clock day is 23h long.
	start := time.Date(2025, 3, 29, 0, 0, 0, 0, loc)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, loc)

	assert.Equal(t, 3, domain.DurationDays(start, end))
}

func TestTripParameters_Validate_Valid(t *testing.T) {
	p := validParams()

	require.NoError(t, p.Validate())
	assert.Equal(t, 3, p.DurationDays())
}

func TestTripParameters_Validate_Rejects(t *testing.T) {
	cases := map[string]func(p *domain.TripParameters){
		"blank destination":     func(p *domain.TripParameters) { p.Destination = "  " },
		"unknown budget":        func(p *domain.TripParameters) { p.BudgetLevel = "cheap" },
		"missing start":         func(p *domain.TripParameters) { p.StartDate = time.Time{} },
		"end before start":      func(p *domain.TripParameters) { p.EndDate = date(2025, 5, 31) },
		"zero travelers":        func(p *domain.TripParameters) { p.NumTravelers = 0 },
		"unknown accommodation": func(p *domain.TripParameters) { p.AccommodationType = "castle" },
		"unknown travel mode":   func(p *domain.TripParameters) { p.TravelMode = "teleport" },
		"no activities":         func(p *domain.TripParameters) { p.Activities = nil },
		"blank activities only": func(p *domain.TripParameters) { p.Activities = []string{"", " "} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)

			assert.ErrorIs(t, p.Validate(), domain.ErrValidation)
		})
	}
}

func TestTripParameters_Validate_SameDayTrip(t *testing.T) {
	p := validParams()
	p.EndDate = p.StartDate

	require.NoError(t, p.Validate())
	assert.Equal(t, 1, p.DurationDays())
}
