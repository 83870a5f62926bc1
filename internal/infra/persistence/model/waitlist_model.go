package model

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistModel mirrors the 'waitlist' table. Status values follow the
// backend's waitlist_status enum (pending/completed/cancelled/expired).
type WaitlistModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Status    string    `gorm:"type:waitlist_status;not null;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (WaitlistModel) TableName() string {
	return "waitlist"
}

// InvitationModel mirrors the 'invitations' table. Invitations share the
// waitlist status enum; a profile holds at most one invitation at a time.
type InvitationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProfileID uuid.UUID `gorm:"type:uuid;unique;not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Token     string    `gorm:"type:varchar(255);unique;not null"`
	Status    string    `gorm:"type:waitlist_status;not null;default:pending"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (InvitationModel) TableName() string {
	return "invitations"
}
