// Package entity contains the core business objects of the harness.
package entity

import "slices"

// Role represents the type of role a member can hold in the club application.
type Role string

const (
	// RoleMember is the baseline role every onboarded identity holds implicitly.
	// It is never stored as a separate grant row.
	RoleMember Role = "member"
	// RoleAdmin grants access to the administrative dashboard.
	RoleAdmin Role = "admin"
	// RoleInstructor allows hosting workshops.
	RoleInstructor Role = "instructor"
	// RoleTreasurer allows managing refunds and payment records.
	RoleTreasurer Role = "treasurer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleInstructor, RoleTreasurer:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// WithoutBaseline returns the roles that require an explicit grant row,
// i.e. the set difference against the implicit baseline member role.
// The backend treats every completed identity as a member, so inserting a
// grant for it would violate the "baseline is never separately stored"
// invariant.
func (rs Roles) WithoutBaseline() Roles {
	result := make(Roles, 0, len(rs))
	for _, r := range rs {
		if r == RoleMember {
			continue
		}
		result = append(result, r)
	}

	return result
}

// ToStrings converts Roles to []string for token claims compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
