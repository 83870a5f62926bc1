// Package persona generates synthetic personal attributes and run-unique
// addressing for fixture identities.
package persona

import (
	"fmt"
	"strings"
	"time"

	"clubharness/config"
	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/service"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	minAdultAge = 18
	maxAdultAge = 80
)

// generator implements the PersonaGenerator interface using gofakeit.
type generator struct {
	emailDomain string
}

// NewGenerator is the constructor for generator.
func NewGenerator(cfg *config.Config) service.PersonaGenerator {
	return &generator{
		emailDomain: cfg.Harness.EmailDomain,
	}
}

// Generate returns a fresh persona. Values only need to be internally
// consistent; realism matters for form-filling, not correctness.
func (g *generator) Generate() entity.Persona {
	return entity.Persona{
		FirstName:             gofakeit.FirstName(),
		LastName:              gofakeit.LastName(),
		Phone:                 gofakeit.Phone(),
		DateOfBirth:           adultDateOfBirth(),
		EmergencyContactName:  gofakeit.Name(),
		EmergencyContactPhone: gofakeit.Phone(),
	}
}

// UniqueEmail builds an address unique across concurrent test runs: the
// nanosecond timestamp alone could collide between parallel workers, so a
// random suffix is appended as well.
func (g *generator) UniqueEmail(prefix string) string {
	if prefix == "" {
		prefix = "fixture"
	}
	prefix = strings.ToLower(prefix)

	return fmt.Sprintf("%s-%d-%s@%s",
		prefix,
		time.Now().UnixNano(),
		strings.ToLower(gofakeit.LetterN(6)),
		g.emailDomain,
	)
}

// Password returns a credential satisfying the backend's password policy
// (length, mixed case, digits, specials).
func (g *generator) Password() string {
	return gofakeit.Password(true, true, true, true, false, 16)
}

// adultDateOfBirth picks a date of birth bounded to an adult age range.
func adultDateOfBirth() time.Time {
	age := gofakeit.Number(minAdultAge, maxAdultAge)
	dayOffset := gofakeit.Number(0, 364)

	return time.Now().AddDate(-age, 0, -dayOffset).Truncate(24 * time.Hour)
}
