package dto

import (
	"strings"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

// SessionResponse is the result of establishing a session: timetable presence plus a fresh dashboard.
type SessionResponse struct {
	HasTimetable bool              `json:"has_timetable"`
	Dashboard    DashboardResponse `json:"dashboard"`
}

// LoginSessionResponse bundles issued tokens with the established session.
type LoginSessionResponse struct {
	*models.LoginResponse
	Session *SessionResponse `json:"session,omitempty"`
}

// LogoutRequest names the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
