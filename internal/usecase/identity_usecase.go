// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform fixture setup and teardown.
package usecase

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/lifecycle"
)

// --- Input DTOs ---

// CreateIdentityInput defines the options for minting a test identity.
// The zero value produces a confirmed baseline member with a generated
// persona and no payment objects.
type CreateIdentityInput struct {
	// Email overrides the generated unique address.
	Email string
	// Password overrides the generated password.
	Password string
	// Roles lists the elevated roles to grant. The baseline member role is
	// implied and silently dropped if present.
	Roles entity.Roles
	// SkipConfirm leaves the auth account unconfirmed, for testing the
	// confirmation flow itself.
	SkipConfirm bool
	// WithSubscription provisions a payment customer with a bank-debit
	// default payment method and a subscription on PriceLookupKey.
	WithSubscription bool
	// PriceLookupKey selects the fee plan; empty defaults to the configured
	// monthly plan.
	PriceLookupKey string
	// PromotionCode applies a promotion to the subscription when set.
	PromotionCode string
	// SkipSignIn leaves the identity without a session, for tests that
	// exercise the sign-in flow themselves.
	SkipSignIn bool
}

// --- Output DTOs ---

// CreateIdentityOutput returns the minted identity and its teardown.
type CreateIdentityOutput struct {
	Identity *entity.TestIdentity
	// Cleanup removes everything the creation wrote, in reverse order. It
	// is also registered on the lifecycle registry, and is safe to call
	// more than once.
	Cleanup lifecycle.CleanupFunc
}

// IdentityUsecase mints fully onboarded test identities: waitlist entry,
// auth account, linked profile, optional payment objects, role grants, and
// a signed-in session.
type IdentityUsecase interface {
	Create(ctx context.Context, input CreateIdentityInput) (*CreateIdentityOutput, error)
}
