package impl

import (
	"context"
	"log/slog"

	"clubharness/config"
	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/service"
	"clubharness/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	authAdmin service.AuthAdmin
	cfg       *config.Config
	logger    *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	AuthAdmin service.AuthAdmin
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		authAdmin: params.AuthAdmin,
		cfg:       params.Config,
		logger:    params.Logger,
	}
}

// SignIn performs a password sign-in and returns the raw session.
func (srv *sessionService) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	session, err := srv.authAdmin.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign in")
	}

	return session, nil
}

// Inject signs in and installs the session cookie into the target. The next
// page the target loads sees an already-authenticated session.
func (srv *sessionService) Inject(ctx context.Context, target service.CookieTarget, email, password string) (*entity.Session, error) {
	session, err := srv.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	cookie, err := entity.NewSessionCookie(session, srv.cfg.Backend.URL, srv.cfg.Harness.AppBaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build session cookie")
	}

	if err := target.AddSessionCookie(ctx, cookie); err != nil {
		return nil, errors.Wrap(err, "failed to install session cookie")
	}

	srv.logger.Debug("Injected session",
		slog.String("email", email),
		slog.String("cookie", cookie.Name),
		slog.String("domain", cookie.Domain),
	)

	return session, nil
}
