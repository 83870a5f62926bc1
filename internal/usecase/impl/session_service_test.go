package impl

import (
	"context"
	"testing"

	"clubharness/internal/domain/entity"
	"clubharness/internal/infra/auth"
	"clubharness/internal/infra/auth/authtest"
	"clubharness/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionServiceFixtures holds all test dependencies for session service tests.
type sessionServiceFixtures struct {
	service usecase.SessionUsecase
	backend *authtest.Server
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	t.Helper()

	backend := authtest.New()
	t.Cleanup(backend.Close)

	cfg := newTestConfig(backend.URL(), authtest.ServiceKey)
	logger := newDiscardLogger()

	authAdmin, err := auth.NewAdminClient(cfg, logger)
	require.NoError(t, err)

	service := NewSessionService(SessionServiceParams{
		AuthAdmin: authAdmin,
		Config:    cfg,
		Logger:    logger,
	})

	return sessionServiceFixtures{service: service, backend: backend}
}

func seedAccount(t *testing.T, backend *authtest.Server, email, password string) {
	t.Helper()

	cfg := newTestConfig(backend.URL(), authtest.ServiceKey)
	authAdmin, err := auth.NewAdminClient(cfg, newDiscardLogger())
	require.NoError(t, err)

	_, err = authAdmin.CreateUser(context.Background(), email, password, true)
	require.NoError(t, err)
}

func TestSessionService_Inject_InstallsDecodableCookie(t *testing.T) {
	fixtures := createTestSessionService(t)
	ctx := context.Background()

	seedAccount(t, fixtures.backend, "bridge@test.com", "Bridge-Pass1!")

	target := &fakeCookieTarget{}
	session, err := fixtures.service.Inject(ctx, target, "bridge@test.com", "Bridge-Pass1!")
	require.NoError(t, err)
	require.Len(t, target.cookies, 1)

	cookie := target.cookies[0]
	// The local backend's host has no subdomains; the name still derives
	// from the leading host label.
	assert.Contains(t, cookie.Name, "sb-")
	assert.Contains(t, cookie.Name, "-auth-token")
	assert.Equal(t, "localhost", cookie.Domain)
	assert.Equal(t, "/", cookie.Path)
	assert.False(t, cookie.Secure)
	assert.False(t, cookie.HTTPOnly)
	assert.Equal(t, "Lax", cookie.SameSite)

	// The payload must round-trip to the same session.
	decoded, err := entity.DecodeSessionValue(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, session.AccessToken, decoded.AccessToken)
	assert.Equal(t, session.RefreshToken, decoded.RefreshToken)
	assert.Equal(t, session.UserID, decoded.UserID)
}

func TestSessionService_Inject_SignInFailureLeavesTargetUntouched(t *testing.T) {
	fixtures := createTestSessionService(t)

	seedAccount(t, fixtures.backend, "nope@test.com", "Right-Pass1!")

	target := &fakeCookieTarget{}
	_, err := fixtures.service.Inject(context.Background(), target, "nope@test.com", "wrong-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
	assert.Empty(t, target.cookies)
}

func TestSessionService_SignIn_ReturnsSession(t *testing.T) {
	fixtures := createTestSessionService(t)

	seedAccount(t, fixtures.backend, "signin@test.com", "Sign-Pass1!")

	session, err := fixtures.service.SignIn(context.Background(), "signin@test.com", "Sign-Pass1!")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "bearer", session.TokenType)
}
