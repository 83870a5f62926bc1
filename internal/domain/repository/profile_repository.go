// Package repository defines the persistence interfaces the use case layer
// depends on, keeping it independent of GORM and PostgreSQL specifics.
package repository

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by profile lookups.
var (
	// ErrProfileNotFound is returned when no profile row matches the query.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrMemberNotFound is returned when no member row matches the query.
	ErrMemberNotFound = errors.New("member not found")
)

// ProfileRepository manages the domain profile rows backing a test identity,
// including the stored procedures the backend exposes for onboarding.
type ProfileRepository interface {
	// CreateWaitlistProfile invokes the backend's waitlist stored procedure,
	// creating a precursor profile plus its linked waitlist entry.
	CreateWaitlistProfile(ctx context.Context, email string) (profileID, waitlistID uuid.UUID, err error)

	// LinkAuthAccount writes the auth account id and waitlist id onto the
	// profile row once the auth account exists.
	LinkAuthAccount(ctx context.Context, profileID, authUserID, waitlistID uuid.UUID) error

	// SetPaymentCustomer records the external payment customer id on the profile.
	SetPaymentCustomer(ctx context.Context, profileID uuid.UUID, customerID string) error

	// CompleteRegistration invokes the backend's registration-completion
	// procedure with the emergency-contact fields, producing the member id.
	CompleteRegistration(ctx context.Context, profileID uuid.UUID, persona entity.Persona) (memberID uuid.UUID, err error)

	// ProfileExists reports whether the profile row still resolves by id.
	ProfileExists(ctx context.Context, profileID uuid.UUID) (bool, error)

	// DeleteMember removes the member row derived from the profile.
	DeleteMember(ctx context.Context, profileID uuid.UUID) error

	// DeleteProfile removes the profile row itself.
	DeleteProfile(ctx context.Context, profileID uuid.UUID) error
}
