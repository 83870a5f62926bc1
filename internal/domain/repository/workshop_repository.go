package repository

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by workshop lookups.
var (
	// ErrWorkshopNotFound is returned when no workshop row matches the query.
	ErrWorkshopNotFound = errors.New("workshop not found")
	// ErrRegistrationNotFound is returned when no registration row matches the query.
	ErrRegistrationNotFound = errors.New("registration not found")
)

// WorkshopRepository manages workshop fixture rows.
type WorkshopRepository interface {
	// Create persists a new workshop row.
	Create(ctx context.Context, workshop *entity.Workshop) error

	// FindByID retrieves a workshop by its unique id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Workshop, error)

	// Delete removes a workshop. The backend cascades the deletion to
	// registrations created against it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegistrationRepository manages workshop registration rows.
type RegistrationRepository interface {
	// Create persists a new registration row.
	Create(ctx context.Context, registration *entity.Registration) error

	// FindByWorkshopID retrieves all registrations for a workshop.
	FindByWorkshopID(ctx context.Context, workshopID uuid.UUID) ([]*entity.Registration, error)

	// Delete removes a registration by its unique id.
	Delete(ctx context.Context, id uuid.UUID) error
}
