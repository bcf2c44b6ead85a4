package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxProfileFieldLen bounds every free-text profile field, in runes.
const MaxProfileFieldLen = 200

// Profile holds a user's personal details and app preferences. Text fields
// are nil when unset.
type Profile struct {
	UserID               uuid.UUID
	FullName             *string
	Mobile               *string
	City                 *string
	Country              *string
	AvatarURL            *string
	DarkMode             bool
	NotificationsEnabled bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultProfile is the profile of a user who never saved one.
func DefaultProfile(userID uuid.UUID) Profile {
	return Profile{UserID: userID, NotificationsEnabled: true}
}

// ProfileUpdate is a partial profile change. Nil fields are left as they are;
// an empty string clears a text field.
type ProfileUpdate struct {
	FullName             *string
	Mobile               *string
	City                 *string
	Country              *string
	AvatarURL            *string
	DarkMode             *bool
	NotificationsEnabled *bool
}

// Empty reports whether u changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Mobile == nil && u.City == nil && u.Country == nil &&
		u.AvatarURL == nil && u.DarkMode == nil && u.NotificationsEnabled == nil
}

// Validate trims the text fields in place and checks their lengths and the
// avatar URL. Returns ErrValidation on the first violation.
func (u *ProfileUpdate) Validate() error {
	text := []struct {
		name string
		v    *string
	}{
		{"full_name", u.FullName},
		{"mobile", u.Mobile},
		{"city", u.City},
		{"country", u.Country},
		{"avatar_url", u.AvatarURL},
	}
	for _, f := range text {
		if f.v == nil {
			continue
		}
		*f.v = strings.TrimSpace(*f.v)
		if n := len([]rune(*f.v)); n > MaxProfileFieldLen {
			return fmt.Errorf("%w: %s is %d characters, at most %d allowed", ErrValidation, f.name, n, MaxProfileFieldLen)
		}
	}
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		p, err := url.Parse(*u.AvatarURL)
		if err != nil || (p.Scheme != "http" && p.Scheme != "https") || p.Host == "" {
			return fmt.Errorf("%w: avatar_url must be an http or https URL", ErrValidation)
		}
	}
	return nil
}
