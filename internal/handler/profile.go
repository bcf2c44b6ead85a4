package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripweaver/internal/domain"
)

// profileRequest is a PATCH body. Absent fields are left unchanged and an
// empty string clears a text field.
type profileRequest struct {
	FullName             *string `json:"full_name"`
	Mobile               *string `json:"mobile"`
	City                 *string `json:"city"`
	Country              *string `json:"country"`
	AvatarURL            *string `json:"avatar_url"`
	DarkMode             *bool   `json:"dark_mode"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

type profileResponse struct {
	UserID               uuid.UUID `json:"user_id"`
	FullName             *string   `json:"full_name"`
	Mobile               *string   `json:"mobile"`
	City                 *string   `json:"city"`
	Country              *string   `json:"country"`
	AvatarURL            *string   `json:"avatar_url"`
	DarkMode             bool      `json:"dark_mode"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func profileToResponse(p domain.Profile) profileResponse {
	return profileResponse{
		UserID:               p.UserID,
		FullName:             p.FullName,
		Mobile:               p.Mobile,
		City:                 p.City,
		Country:              p.Country,
		AvatarURL:            p.AvatarURL,
		DarkMode:             p.DarkMode,
		NotificationsEnabled: p.NotificationsEnabled,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// GetProfile handles GET /profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	p, err := s.svc.Profiles.Get(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// UpdateProfile handles PATCH /profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body profileRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, "")
		return
	}

	p, err := s.svc.Profiles.Update(r.Context(), userID, domain.ProfileUpdate{
		FullName:             body.FullName,
		Mobile:               body.Mobile,
		City:                 body.City,
		Country:              body.Country,
		AvatarURL:            body.AvatarURL,
		DarkMode:             body.DarkMode,
		NotificationsEnabled: body.NotificationsEnabled,
	})
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}
