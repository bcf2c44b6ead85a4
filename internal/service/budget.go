package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// dailyRates are per-day USD estimates for one budget tier.
type dailyRates struct {
	daily, accommodation, food, activities, transport int
}

var budgetRates = map[domain.BudgetLevel]dailyRates{
	domain.BudgetLevelBudget:   {daily: 50, accommodation: 30, food: 15, activities: 20, transport: 10},
	domain.BudgetLevelModerate: {daily: 150, accommodation: 80, food: 40, activities: 50, transport: 30},
	domain.BudgetLevelLuxury:   {daily: 400, accommodation: 200, food: 100, activities: 150, transport: 80},
}

// shoppingShare is the fraction of the daily rate set aside for shopping and
// incidentals.
const shoppingShare = 0.15

// BudgetService estimates trip costs.
type BudgetService struct {
	trips repo.TripRepo
}

// NewBudgetService constructs a BudgetService.
func NewBudgetService(trips repo.TripRepo) *BudgetService {
	return &BudgetService{trips: trips}
}

// EstimateForTrip returns the budget estimate of a trip owned by userID.
func (s *BudgetService) EstimateForTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.BudgetEstimate, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.BudgetEstimate{}, fmt.Errorf("service.BudgetService.EstimateForTrip: %w", err)
	}
	return EstimateBudget(trip.TripParameters), nil
}

// EstimateBudget computes the estimate from the tier rates alone. Unknown
// tiers are priced as moderate; fewer than one traveler counts as one.
func EstimateBudget(params domain.TripParameters) domain.BudgetEstimate {
	level := params.BudgetLevel
	rates, ok := budgetRates[level]
	if !ok {
		level = domain.BudgetLevelModerate
		rates = budgetRates[level]
	}
	days := params.DurationDays()
	travelers := max(params.NumTravelers, 1)

	categories := []domain.BudgetCategory{
		{Label: "Accommodation", Amount: rates.accommodation * days},
		{Label: "Transportation", Amount: rates.transport * days},
		{Label: "Food & Dining", Amount: rates.food * days},
		{Label: "Activities & Tours", Amount: rates.activities * days},
		{Label: "Shopping & Misc", Amount: int(math.Round(float64(rates.daily*days) * shoppingShare))},
	}
	total := 0
	for _, c := range categories {
		total += c.Amount
	}

	return domain.BudgetEstimate{
		BudgetLevel:  level,
		Days:         days,
		NumTravelers: travelers,
		DailyRate:    rates.daily,
		Categories:   categories,
		Total:        total,
		PerPerson:    int(math.Round(float64(total) / float64(travelers))),
		Currency:     "USD",
	}
}
