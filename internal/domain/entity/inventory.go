package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Container is a physical storage location for inventory items.
// A container cannot be deleted while it still holds items.
type Container struct {
	ID        uuid.UUID // The unique ID for this container.
	Name      string    // Display name, e.g. "Shelf B3".
	Location  string    // Where the container lives.
	CreatedAt time.Time // Timestamp of when the container was created.
}

// Category groups items and carries the attribute schema their attributes
// are validated against by the application. The harness treats the schema
// as an opaque JSON document.
type Category struct {
	ID              uuid.UUID       // The unique ID for this category.
	Name            string          // Display name, e.g. "Power tools".
	AttributeSchema json.RawMessage // Opaque per-category attribute schema.
	CreatedAt       time.Time       // Timestamp of when the category was created.
}

// Item is a single inventory record. Items must be deleted before their
// container or category can be removed.
type Item struct {
	ID          uuid.UUID       // The unique ID for this item.
	ContainerID uuid.UUID       // The container holding the item.
	CategoryID  uuid.UUID       // The category the item belongs to.
	Name        string          // Display name.
	Attributes  json.RawMessage // Opaque attribute bag matching the category schema.
	PhotoURL    string          // Optional photo location in object storage.
	CreatedAt   time.Time       // Timestamp of when the item was created.
}
