// Package service defines the domain-level interfaces for external
// collaborators: the backend's auth-admin API, the payment provider, object
// storage, and the browser automation driver.
package service

import (
	"context"

	"clubharness/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthUser is the harness's view of an auth account record.
type AuthUser struct {
	ID        uuid.UUID // The auth account id.
	Email     string    // The account's address.
	Confirmed bool      // Whether the address is confirmed; fixture accounts always are.
	Roles     []string  // Role claims mirrored into the account's token metadata.
}

// AuthAdmin administers auth accounts with the service-role credential and
// mints user sessions via the password grant. Implementations are stateless:
// every call carries its own credentials, so no shared session handle exists
// to race on.
type AuthAdmin interface {
	// CreateUser creates an auth account. Fixture accounts are created
	// auto-confirmed so the email verification step is bypassed.
	CreateUser(ctx context.Context, email, password string, autoConfirm bool) (*AuthUser, error)

	// GetUser retrieves an auth account by id.
	GetUser(ctx context.Context, id uuid.UUID) (*AuthUser, error)

	// UpdateRoleClaims mirrors the role set into the account's token claims
	// so authorization middleware can read roles from the session token
	// without a database lookup.
	UpdateRoleClaims(ctx context.Context, id uuid.UUID, roles []string) error

	// DeleteUser removes an auth account by id.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// SignInWithPassword performs a password grant for the given credentials
	// and returns the resulting session.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
}
