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

// ProfileRepo defines the persistence operations for user profiles.
// A user has at most one profile row, keyed by user id.
type ProfileRepo interface {
	// GetByUserID retrieves the user's profile. Returns domain.ErrNotFound
	// when the user never saved one.
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)

	// Upsert applies u to the user's profile in one statement, creating the
	// row with default preferences first when it does not exist.
	Upsert(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error)
}

type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

const profileColumns = `user_id, full_name, mobile, city, country, avatar_url, dark_mode,
		notifications_enabled, created_at, updated_at`

func (r *pgProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = @user_id`

	result, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetByUserID: %w", err)
	}
	return result, nil
}

// Upsert sets a text column only when its *_set flag is true so a nil field
// in the update leaves the stored value alone; an empty string stores NULL.
func (r *pgProfileRepo) Upsert(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error) {
	const q = `
		INSERT INTO profiles (user_id, full_name, mobile, city, country, avatar_url,
		                      dark_mode, notifications_enabled)
		VALUES (@user_id, @full_name::text, @mobile::text, @city::text, @country::text, @avatar_url::text,
		        COALESCE(@dark_mode::boolean, false), COALESCE(@notifications_enabled::boolean, true))
		ON CONFLICT (user_id) DO UPDATE SET
			full_name  = CASE WHEN @full_name_set::boolean  THEN EXCLUDED.full_name  ELSE profiles.full_name  END,
			mobile     = CASE WHEN @mobile_set::boolean     THEN EXCLUDED.mobile     ELSE profiles.mobile     END,
			city       = CASE WHEN @city_set::boolean       THEN EXCLUDED.city       ELSE profiles.city       END,
			country    = CASE WHEN @country_set::boolean    THEN EXCLUDED.country    ELSE profiles.country    END,
			avatar_url = CASE WHEN @avatar_url_set::boolean THEN EXCLUDED.avatar_url ELSE profiles.avatar_url END,
			dark_mode             = COALESCE(@dark_mode::boolean, profiles.dark_mode),
			notifications_enabled = COALESCE(@notifications_enabled::boolean, profiles.notifications_enabled),
			updated_at = now()
		RETURNING ` + profileColumns

	args := pgx.NamedArgs{
		"user_id":               userID,
		"dark_mode":             u.DarkMode,
		"notifications_enabled": u.NotificationsEnabled,
	}
	for name, v := range map[string]*string{
		"full_name":  u.FullName,
		"mobile":     u.Mobile,
		"city":       u.City,
		"country":    u.Country,
		"avatar_url": u.AvatarURL,
	} {
		args[name+"_set"] = v != nil
		args[name] = nullableText(v)
	}

	result, err := scanProfile(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Upsert: %w", err)
	}
	return result, nil
}

func nullableText(v *string) pgtype.Text {
	if v == nil || *v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *v, Valid: true}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p                      domain.Profile
		userID                 pgtype.UUID
		fullName, mobile, city pgtype.Text
		country, avatarURL     pgtype.Text
	)
	err := s.Scan(&userID, &fullName, &mobile, &city, &country, &avatarURL,
		&p.DarkMode, &p.NotificationsEnabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	p.UserID = uuid.UUID(userID.Bytes)
	p.FullName = textPtr(fullName)
	p.Mobile = textPtr(mobile)
	p.City = textPtr(city)
	p.Country = textPtr(country)
	p.AvatarURL = textPtr(avatarURL)
	return p, nil
}
