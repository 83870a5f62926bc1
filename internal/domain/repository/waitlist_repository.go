package repository

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by waitlist and invitation lookups.
var (
	// ErrWaitlistEntryNotFound is returned when no waitlist row matches the query.
	ErrWaitlistEntryNotFound = errors.New("waitlist entry not found")
	// ErrInvitationNotFound is returned when no invitation row matches the query.
	ErrInvitationNotFound = errors.New("invitation not found")
)

// WaitlistRepository manages the precursor waitlist rows.
type WaitlistRepository interface {
	// FindByID retrieves a waitlist entry by its unique id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error)

	// UpdateStatus moves a waitlist entry to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error

	// Delete removes a waitlist entry by its unique id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvitationRepository manages direct-invite precursor rows. A profile links
// to at most one invitation at a time.
type InvitationRepository interface {
	// Create persists a new invitation row.
	Create(ctx context.Context, invitation *entity.Invitation) error

	// FindByProfileID retrieves the invitation linked to a profile, if any.
	FindByProfileID(ctx context.Context, profileID uuid.UUID) (*entity.Invitation, error)

	// UpdateStatus moves an invitation to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error

	// Delete removes an invitation by its unique id.
	Delete(ctx context.Context, id uuid.UUID) error
}
