package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripweaver/internal/domain"
	"github.com/pkordes/tripweaver/internal/handler"
)

func TestGetProfile(t *testing.T) {
	city := "Lisbon"
	svc := &mockProfileServicer{
		get: func(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
			assert.Equal(t, testUser, userID)
			return domain.Profile{UserID: userID, City: &city, NotificationsEnabled: true}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Profiles: svc})

	rec := do(t, h, http.MethodGet, "/profile", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, testUser.String(), got["user_id"])
	assert.Equal(t, "Lisbon", got["city"])
	assert.Nil(t, got["full_name"], "unset fields are null")
	assert.Contains(t, got, "full_name")
	assert.Equal(t, true, got["notifications_enabled"])
	assert.Equal(t, false, got["dark_mode"])
}

func TestUpdateProfile(t *testing.T) {
	var got domain.ProfileUpdate
	svc := &mockProfileServicer{
		update: func(_ context.Context, userID uuid.UUID, u domain.ProfileUpdate) (domain.Profile, error) {
			assert.Equal(t, testUser, userID)
			got = u
			return domain.Profile{UserID: userID, Country: u.Country, DarkMode: true}, nil
		},
	}
	h := newHTTPHandler(handler.Services{Profiles: svc})

	rec := do(t, h, http.MethodPatch, "/profile", strings.NewReader(`{"country":"Portugal","dark_mode":true}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Country)
	assert.Equal(t, "Portugal", *got.Country)
	require.NotNil(t, got.DarkMode)
	assert.True(t, *got.DarkMode)
	assert.Nil(t, got.FullName, "absent fields are not sent")
	assert.Nil(t, got.NotificationsEnabled)
	assert.Equal(t, "Portugal", decode[map[string]any](t, rec)["country"])
}

func TestUpdateProfile_errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"malformed body", `{"city":`, nil, http.StatusBadRequest},
		{"validation", `{"avatar_url":"nope"}`, domain.ErrValidation, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockProfileServicer{
				update: func(context.Context, uuid.UUID, domain.ProfileUpdate) (domain.Profile, error) {
					return domain.Profile{}, tc.err
				},
			}
			h := newHTTPHandler(handler.Services{Profiles: svc})

			rec := do(t, h, http.MethodPatch, "/profile", strings.NewReader(tc.body))

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
