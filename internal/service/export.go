package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/repo"
)

// ExportService flattens a saved itinerary into one row per activity.
type ExportService struct {
	trips       repo.TripRepo
	itineraries repo.ItineraryRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, itineraries repo.ItineraryRepo) *ExportService {
	return &ExportService{trips: trips, itineraries: itineraries}
}

// Export returns the rows of a trip owned by userID, in day then activity
// order. Days without activities contribute one row with empty activity fields.
func (s *ExportService) Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	days, err := s.itineraries.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, d := range days {
		base := domain.ExportRow{
			Destination: trip.Destination,
			Date:        trip.StartDate.AddDate(0, 0, d.DayNumber-1).Format("2006-01-02"),
			DayNumber:   d.DayNumber,
			DayTitle:    d.Title,
		}
		if len(d.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range d.Activities {
			row := base
			row.ItineraryActivity = a
			rows = append(rows, row)
		}
	}
	return rows, nil
}
