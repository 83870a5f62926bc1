package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a snapshot of an authenticated backend session, as returned by
// a password sign-in. It is what the session bridge serializes into the
// browser cookie.
type Session struct {
	AccessToken  string    `json:"access_token"`  // Bearer token accepted by the application backend.
	RefreshToken string    `json:"refresh_token"` // Opaque token for session renewal; unused within a single test.
	TokenType    string    `json:"token_type"`    // Always "bearer" for password grants.
	ExpiresAt    time.Time `json:"expires_at"`    // Access token expiry; not enforced within a test's lifetime.
	UserID       uuid.UUID `json:"user_id"`       // The auth account the session belongs to.
	Email        string    `json:"email"`         // Convenience copy of the signed-in address.
}
