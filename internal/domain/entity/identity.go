// Package entity contains the core business objects of the harness,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Persona holds the synthetic personal attributes generated for a test
// identity. The values only need to be internally consistent; they exist so
// that form-filling flows see realistic data.
type Persona struct {
	FirstName             string    // Given name used on the member profile.
	LastName              string    // Family name used on the member profile.
	Phone                 string    // Contact phone number in a plausible format.
	DateOfBirth           time.Time // Bounded to an adult age range.
	EmergencyContactName  string    // Required by the registration-completion procedure.
	EmergencyContactPhone string    // Required by the registration-completion procedure.
}

// TestIdentity is a fully-provisioned user identity created by the fixture
// factory: auth account, domain profile, role grants, and optionally a
// payment customer with active subscriptions.
type TestIdentity struct {
	Email            string    // Globally unique per test run (timestamp + random suffix).
	Password         string    // Plaintext credential used for password sign-in.
	Persona          Persona   // Synthetic personal attributes.
	ProfileID        uuid.UUID // The domain profile row created by the waitlist procedure.
	WaitlistID       uuid.UUID // The precursor waitlist entry linked to the profile.
	AuthUserID       uuid.UUID // The auth account id.
	MemberID         uuid.UUID // The final member id produced by registration completion.
	StripeCustomerID string    // Set only when a payment subscription was requested.
	Roles            Roles     // The requested role set, baseline included.
	Session          *Session  // Access session minted by the final password sign-in.
}
