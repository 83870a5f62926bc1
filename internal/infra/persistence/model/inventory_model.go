package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContainerModel mirrors the 'inventory_containers' table. Items keep a
// RESTRICT foreign key to their container, so deleting a non-empty container
// fails at the database.
type ContainerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Location  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ItemModel `gorm:"foreignKey:ContainerID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (ContainerModel) TableName() string {
	return "inventory_containers"
}

// CategoryModel mirrors the 'inventory_categories' table. AttributeSchema is
// an opaque jsonb document the application validates item attributes against.
type CategoryModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name            string         `gorm:"type:varchar(255);unique;not null"`
	AttributeSchema datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []ItemModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "inventory_categories"
}

// ItemModel mirrors the 'inventory_items' table.
type ItemModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ContainerID uuid.UUID      `gorm:"type:uuid;not null"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Attributes  datatypes.JSON `gorm:"type:jsonb"`
	PhotoURL    string         `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "inventory_items"
}
