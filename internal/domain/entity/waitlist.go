package entity

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistStatus gates whether an identity is allowed to complete signup.
type WaitlistStatus string

const (
	// WaitlistStatusPending marks a freshly created waitlist entry.
	WaitlistStatusPending WaitlistStatus = "pending"
	// WaitlistStatusCompleted marks an entry whose identity finished onboarding.
	WaitlistStatusCompleted WaitlistStatus = "completed"
	// WaitlistStatusCancelled marks an entry withdrawn before completion.
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
	// WaitlistStatusExpired marks an entry whose signup window lapsed.
	WaitlistStatusExpired WaitlistStatus = "expired"
)

// IsValid checks if the WaitlistStatus is a valid value.
func (s WaitlistStatus) IsValid() bool {
	switch s {
	case WaitlistStatusPending, WaitlistStatusCompleted, WaitlistStatusCancelled, WaitlistStatusExpired:
		return true
	default:
		return false
	}
}

// WaitlistEntry is the precursor record created before an identity is fully
// onboarded. A profile links to at most one waitlist entry at a time.
type WaitlistEntry struct {
	ID        uuid.UUID      // The unique ID for this waitlist row.
	ProfileID uuid.UUID      // The domain profile this entry belongs to.
	Email     string         // The address the entry was created for.
	Status    WaitlistStatus // Gates signup completion.
	CreatedAt time.Time      // Timestamp of when the entry was created.
}

// Invitation is an alternative precursor record: a direct invite that lets
// an identity skip the waitlist. A profile links to at most one invitation
// at a time.
type Invitation struct {
	ID        uuid.UUID      // The unique ID for this invitation row.
	ProfileID uuid.UUID      // The domain profile this invitation belongs to.
	Email     string         // The invited address.
	Token     string         // One-time token embedded in the invite link.
	Status    WaitlistStatus // Invitations share the waitlist status enum.
	ExpiresAt time.Time      // The invite link expiry.
	CreatedAt time.Time      // Timestamp of when the invitation was issued.
}
