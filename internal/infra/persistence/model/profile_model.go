package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel mirrors the 'profiles' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). Profiles are created by the create_waitlist_entry
// stored procedure before an auth account exists, so AuthUserID is nullable.
type ProfileModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email             string     `gorm:"type:varchar(255);unique;not null"`
	AuthUserID        *uuid.UUID `gorm:"type:uuid;unique"`
	WaitlistID        *uuid.UUID `gorm:"type:uuid"`
	PaymentCustomerID string     `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Member *MemberModel `gorm:"foreignKey:ProfileID"`
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}

// MemberModel mirrors the 'members' table, produced by the
// complete_member_registration stored procedure.
type MemberModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProfileID             uuid.UUID `gorm:"type:uuid;unique;not null"`
	FirstName             string    `gorm:"type:varchar(100);not null"`
	LastName              string    `gorm:"type:varchar(100);not null"`
	Phone                 string    `gorm:"type:varchar(50)"`
	DateOfBirth           time.Time `gorm:"type:date"`
	EmergencyContactName  string    `gorm:"type:varchar(200);not null"`
	EmergencyContactPhone string    `gorm:"type:varchar(50);not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (MemberModel) TableName() string {
	return "members"
}
