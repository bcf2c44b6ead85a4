package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripweaver/internal/domain"
)

// ItineraryRepo persists the generated days of a trip.
// Callers are responsible for checking that the trip belongs to the user.
type ItineraryRepo interface {
	// ReplaceForTrip deletes every saved day of the trip and inserts days in
	// their place, in one transaction. The trip row is locked first, so
	// concurrent replaces of one trip run one after another and retrying with
	// the same days leaves the same rows behind, never duplicates.
	// Returns domain.ErrNotFound if the trip does not exist.
	ReplaceForTrip(ctx context.Context, tripID uuid.UUID, days []domain.ItineraryDay) ([]domain.SavedDay, error)

	// ListByTripID returns the saved days ordered by day_number.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.SavedDay, error)
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

func (r *pgItineraryRepo) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, days []domain.ItineraryDay) ([]domain.SavedDay, error) {
	const lock = `SELECT 1 FROM trips WHERE id = @trip_id FOR UPDATE`
	const del = `DELETE FROM itineraries WHERE trip_id = @trip_id`
	const ins = `
		INSERT INTO itineraries (trip_id, day_number, title, activities)
		VALUES (@trip_id, @day_number, @title, @activities)
		RETURNING id, trip_id, day_number, title, activities, created_at`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceForTrip: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // no-op after Commit

	var one int
	if err := tx.QueryRow(ctx, lock, pgx.NamedArgs{"trip_id": tripID}).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceForTrip: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceForTrip: lock trip: %w", err)
	}
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceForTrip: delete: %w", err)
	}

	saved := make([]domain.SavedDay, 0, len(days))
	for _, d := range days {
		activities := d.Activities
		if activities == nil {
			activities = []domain.ItineraryActivity{}
		}
		args := pgx.NamedArgs{
			"trip_id":    tripID,
			"day_number": d.DayNumber,
			"title":      d.Title,
			"activities": activities,
		}
		s, err := scanSavedDay(tx.QueryRow(ctx, ins, args))
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceForTrip: insert day %d: %w", d.DayNumber, err)
		}
		saved = append(saved, s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ReplaceForTrip: commit: %w", err)
	}
	return saved, nil
}

func (r *pgItineraryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.SavedDay, error) {
	const q = `
		SELECT id, trip_id, day_number, title, activities, created_at
		FROM itineraries
		WHERE trip_id = @trip_id
		ORDER BY day_number, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	days := []domain.SavedDay{}
	for rows.Next() {
		d, err := scanSavedDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTripID: rows: %w", err)
	}
	return days, nil
}

// scanSavedDay maps an itineraries row; activities is decoded from JSONB by pgx.
func scanSavedDay(s scanner) (domain.SavedDay, error) {
	var (
		d          domain.SavedDay
		id, tripID pgtype.UUID
	)
	if err := s.Scan(&id, &tripID, &d.DayNumber, &d.Title, &d.Activities, &d.CreatedAt); err != nil {
		return domain.SavedDay{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	if d.Activities == nil {
		d.Activities = []domain.ItineraryActivity{}
	}
	return d, nil
}
