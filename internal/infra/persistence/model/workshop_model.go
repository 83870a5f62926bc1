package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkshopModel mirrors the 'workshops' table.
type WorkshopModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:varchar(255)"`
	StartsAt    time.Time `gorm:"not null"`
	EndsAt      time.Time `gorm:"not null"`
	Capacity    int       `gorm:"not null"`
	PriceCents  int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Registrations []RegistrationModel `gorm:"foreignKey:WorkshopID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (WorkshopModel) TableName() string {
	return "workshops"
}

// RegistrationModel mirrors the 'workshop_registrations' table. The FK to
// workshops cascades on delete, so removing a workshop removes its
// registrations in the same statement.
type RegistrationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	WorkshopID  uuid.UUID `gorm:"type:uuid;not null"`
	MemberID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_workshop_member,priority:2"`
	Status      string    `gorm:"type:registration_status;not null;default:registered"`
	CheckInCode string    `gorm:"type:varchar(64);unique;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RegistrationModel) TableName() string {
	return "workshop_registrations"
}
