package models

import "time"

// Session represents a logged-in user session.
type Session struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id" validate:"required"`
	SessionToken string    `json:"-" db:"session_token" validate:"required"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at" validate:"required"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
