package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSessionDuration is how long a browser session lives without re-login.
const DefaultSessionDuration = 30 * 24 * time.Hour

// Session is a server-side login session. The session ID is the only thing
// the browser holds (in an HTTP-only cookie); all state lives in the store.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession creates a session for the given user with the given lifetime.
// A zero duration falls back to DefaultSessionDuration.
func NewSession(userID string, duration time.Duration) *Session {
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}
}

// IsExpired returns true if the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
