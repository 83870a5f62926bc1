package service

import "clubharness/internal/domain/entity"

// PersonaGenerator produces synthetic but internally consistent personal
// attributes for fixture identities, plus run-unique email addresses.
type PersonaGenerator interface {
	// Generate returns a fresh persona with a date of birth bounded to an
	// adult age range.
	Generate() entity.Persona

	// UniqueEmail builds an address that is unique across concurrent test
	// runs (timestamp plus random suffix under the configured domain).
	UniqueEmail(prefix string) string

	// Password returns a credential that satisfies the backend's password policy.
	Password() string
}
