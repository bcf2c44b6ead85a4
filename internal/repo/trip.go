// Package repo contains all database access logic for the TripWeaver API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripweaver/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test;
// Begin on a pgx.Tx opens a savepoint, so nested transactions still work.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// Every lookup except GetPublicByShareToken is scoped to the owning user: a
// trip that exists but belongs to someone else is reported as ErrNotFound.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record with the
	// DB-generated id, share_token, created_at and updated_at populated.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// GetPublicByShareToken retrieves a trip by share token, only when it is public.
	GetPublicByShareToken(ctx context.Context, token uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of the user's trips, newest first, and the
	// total number of trips the user owns.
	ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// UpdateStatus sets the lifecycle status and returns the updated record.
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error)

	// SetVisibility toggles is_public and returns the updated record.
	SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error)

	// Delete removes a trip and, by cascade, its saved itinerary days.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, destination, budget_level, start_date, end_date, num_travelers,
		accommodation_type, travel_mode, activities, status, share_token, is_public,
		created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, destination, budget_level, start_date, end_date, num_travelers,
		                   accommodation_type, travel_mode, activities, status)
		VALUES (@user_id, @destination, @budget_level, @start_date, @end_date, @num_travelers,
		        @accommodation_type, @travel_mode, @activities, @status)
		RETURNING ` + tripColumns

	status := trip.Status
	if status == "" {
		status = domain.TripStatusDraft
	}
	activities := trip.Activities
	if activities == nil {
		activities = []string{}
	}

	args := pgx.NamedArgs{
		"user_id":            trip.UserID,
		"destination":        trip.Destination,
		"budget_level":       string(trip.BudgetLevel),
		"start_date":         trip.StartDate,
		"end_date":           trip.EndDate,
		"num_travelers":      trip.NumTravelers,
		"accommodation_type": string(trip.AccommodationType),
		"travel_mode":        string(trip.TravelMode),
		"activities":         activities,
		"status":             string(status),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetPublicByShareToken retrieves a public trip by its share token.
func (r *pgTripRepo) GetPublicByShareToken(ctx context.Context, token uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + `
		FROM trips
		WHERE share_token = @token AND is_public`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetPublicByShareToken: %w", err)
	}
	return result, nil
}

// ListPaged returns a page of the user's trips ordered by created_at descending.
func (r *pgTripRepo) ListPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips WHERE user_id = @user_id`
	const q = `SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

// UpdateStatus sets status and bumps updated_at.
func (r *pgTripRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET status = @status, updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID, "status": string(status)}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

// SetVisibility sets is_public and bumps updated_at. The share token never changes.
func (r *pgTripRepo) SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET is_public = @is_public, updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID, "is_public": isPublic}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetVisibility: %w", err)
	}
	return result, nil
}

// Delete removes a trip owned by userID.
func (r *pgTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                  domain.Trip
		id, userID, token  pgtype.UUID
		startDate, endDate pgtype.Date
		budget, accom      string
		mode, status       string
	)

	err := s.Scan(&id, &userID, &t.Destination, &budget, &startDate, &endDate, &t.NumTravelers,
		&accom, &mode, &t.Activities, &status, &token, &t.IsPublic, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.ShareToken = uuid.UUID(token.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.BudgetLevel = domain.BudgetLevel(budget)
	t.AccommodationType = domain.AccommodationType(accom)
	t.TravelMode = domain.TravelMode(mode)
	t.Status = domain.TripStatus(status)
	return t, nil
}
