package service

import (
	"context"

	"clubharness/internal/domain/entity"
)

// CookieTarget abstracts the browser automation driver's cookie jar. The
// session cookie must be installed before any navigation that expects the
// user to be authenticated.
type CookieTarget interface {
	// AddSessionCookie installs the cookie into the target's cookie jar.
	AddSessionCookie(ctx context.Context, cookie entity.SessionCookie) error
}
