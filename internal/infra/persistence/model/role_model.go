package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleGrantModel mirrors the 'user_roles' table. One row per elevated role;
// the baseline member role is implicit and never stored.
type RoleGrantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_profile_role"`
	Role      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_roles_profile_role"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleGrantModel) TableName() string {
	return "user_roles"
}
