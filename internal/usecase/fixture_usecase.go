package usecase

import (
	"context"
	"time"

	"clubharness/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// WorkshopInput defines the overridable fields of a workshop fixture.
// Zero-valued fields are filled with sensible defaults.
type WorkshopInput struct {
	Title      string
	Location   string
	StartsAt   time.Time
	EndsAt     time.Time
	Capacity   int
	PriceCents int64
}

// RegistrationInput defines a workshop registration fixture.
type RegistrationInput struct {
	WorkshopID uuid.UUID
	MemberID   uuid.UUID
}

// RegistrationOutput returns the registration plus its check-in QR PNG.
type RegistrationOutput struct {
	Registration *entity.Registration
	CheckInQR    []byte
}

// ItemInput defines an inventory item fixture. Photo, when set, is uploaded
// to object storage and its URL recorded on the item.
type ItemInput struct {
	ContainerID      uuid.UUID
	CategoryID       uuid.UUID
	Name             string
	Attributes       []byte
	Photo            []byte
	PhotoContentType string
}

// InvitationInput defines a direct-invite precursor fixture.
type InvitationInput struct {
	ProfileID uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// FixtureUsecase builds the domain rows scenarios need beyond identities:
// workshops, registrations, inventory, invitations, and bulk waitlist seeds.
// Every builder registers deletion of what it created on the lifecycle
// registry.
type FixtureUsecase interface {
	CreateWorkshop(ctx context.Context, input WorkshopInput) (*entity.Workshop, error)
	CreateRegistration(ctx context.Context, input RegistrationInput) (*RegistrationOutput, error)
	CreateContainer(ctx context.Context, name, location string) (*entity.Container, error)
	CreateCategory(ctx context.Context, name string, attributeSchema []byte) (*entity.Category, error)
	CreateItem(ctx context.Context, input ItemInput) (*entity.Item, error)
	CreateInvitation(ctx context.Context, input InvitationInput) (*entity.Invitation, error)

	// SeedWaitlist creates n waitlist entries with unique addresses,
	// fanning out across the configured number of workers.
	SeedWaitlist(ctx context.Context, n int) ([]*entity.WaitlistEntry, error)
}
