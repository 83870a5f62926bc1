package usecase

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/service"
)

// SessionUsecase bridges backend sessions into browser contexts. Tests use
// it to start a page already authenticated, skipping the login form.
type SessionUsecase interface {
	// SignIn performs a password sign-in and returns the raw session.
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)

	// Inject signs in and installs the resulting session cookie into the
	// target, so the next page load is authenticated.
	Inject(ctx context.Context, target service.CookieTarget, email, password string) (*entity.Session, error)
}
