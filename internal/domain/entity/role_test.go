package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoles_WithoutBaseline(t *testing.T) {
	tests := []struct {
		name  string
		roles Roles
		want  Roles
	}{
		{name: "baseline only", roles: Roles{RoleMember}, want: Roles{}},
		{name: "admin keeps grant", roles: Roles{RoleMember, RoleAdmin}, want: Roles{RoleAdmin}},
		{name: "no baseline present", roles: Roles{RoleInstructor, RoleTreasurer}, want: Roles{RoleInstructor, RoleTreasurer}},
		{name: "empty", roles: Roles{}, want: Roles{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.roles.WithoutBaseline())
		})
	}
}

func TestRolesFromStrings_FiltersInvalid(t *testing.T) {
	roles := RolesFromStrings([]string{"admin", "superuser", "member", ""})
	assert.Equal(t, Roles{RoleAdmin, RoleMember}, roles)
}

func TestWaitlistStatus_IsValid(t *testing.T) {
	for _, status := range []WaitlistStatus{
		WaitlistStatusPending, WaitlistStatusCompleted, WaitlistStatusCancelled, WaitlistStatusExpired,
	} {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, WaitlistStatus("approved").IsValid())
}
