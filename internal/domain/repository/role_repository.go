package repository

import (
	"context"

	"clubharness/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleRepository manages role-grant rows. The baseline member role is
// implicit and never stored; callers are expected to strip it via
// entity.Roles.WithoutBaseline before granting.
type RoleRepository interface {
	// GrantRoles inserts one grant row per role for the given profile.
	GrantRoles(ctx context.Context, profileID uuid.UUID, roles entity.Roles) error

	// RolesOf returns the explicitly granted roles for the given profile.
	RolesOf(ctx context.Context, profileID uuid.UUID) (entity.Roles, error)

	// DeleteByProfileID removes all grant rows for the given profile.
	DeleteByProfileID(ctx context.Context, profileID uuid.UUID) error
}
