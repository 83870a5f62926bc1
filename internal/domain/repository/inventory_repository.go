package repository

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by inventory lookups.
var (
	// ErrContainerNotFound is returned when no container row matches the query.
	ErrContainerNotFound = errors.New("container not found")
	// ErrCategoryNotFound is returned when no category row matches the query.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrItemNotFound is returned when no item row matches the query.
	ErrItemNotFound = errors.New("item not found")
)

// ContainerRepository manages inventory container rows. Deleting a container
// that still holds items is rejected by the backend.
type ContainerRepository interface {
	// Create persists a new container row.
	Create(ctx context.Context, container *entity.Container) error

	// Delete removes a container by its unique id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository manages inventory category rows. Deleting a category
// that still has items is rejected by the backend.
type CategoryRepository interface {
	// Create persists a new category row.
	Create(ctx context.Context, category *entity.Category) error

	// Delete removes a category by its unique id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepository manages inventory item rows.
type ItemRepository interface {
	// Create persists a new item row.
	Create(ctx context.Context, item *entity.Item) error

	// SetPhotoURL records the object-storage location of the item's photo.
	SetPhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error

	// Delete removes an item by its unique id.
	Delete(ctx context.Context, id uuid.UUID) error
}
