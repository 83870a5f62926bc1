// Package auth provides the HTTP client for the backend's auth-admin API:
// account administration with the service-role credential and password-grant
// sign-ins for fixture identities.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clubharness/config"
	"clubharness/internal/domain/entity"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/service"
	"clubharness/internal/errors"

	"github.com/google/uuid"
)

const requestTimeout = 15 * time.Second

// adminClient implements the AuthAdmin interface over the backend's REST
// auth API. The client is stateless: every request carries its own
// credentials, so there is no shared session handle to race on when tests
// mint user sessions concurrently.
type adminClient struct {
	baseURL    string
	serviceKey string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAdminClient is the constructor for adminClient. It fails fast when the
// backend URL or service key is absent; elevated-privilege operations must
// never run against an unconfigured target.
func NewAdminClient(cfg *config.Config, logger *slog.Logger) (service.AuthAdmin, error) {
	if strings.TrimSpace(cfg.Backend.URL) == "" {
		return nil, domainerrors.ErrMissingBackendURL
	}
	if strings.TrimSpace(cfg.Backend.ServiceKey) == "" {
		return nil, domainerrors.ErrMissingServiceKey
	}
	if _, err := url.Parse(cfg.Backend.URL); err != nil {
		return nil, errors.Wrap(err, "parse backend URL")
	}

	// User-scoped requests prefer the public key; the service key still
	// works but grants more than a password grant needs.
	anonKey := cfg.Backend.AnonKey
	if anonKey == "" {
		anonKey = cfg.Backend.ServiceKey
	}

	return &adminClient{
		baseURL:    strings.TrimRight(cfg.Backend.URL, "/"),
		serviceKey: cfg.Backend.ServiceKey,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}, nil
}

// authUserPayload mirrors the backend's auth account representation.
type authUserPayload struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	AppMetadata      struct {
		Roles []string `json:"roles"`
	} `json:"app_metadata"`
}

func (p *authUserPayload) toAuthUser() *service.AuthUser {
	return &service.AuthUser{
		ID:        p.ID,
		Email:     p.Email,
		Confirmed: p.EmailConfirmedAt != nil,
		Roles:     p.AppMetadata.Roles,
	}
}

// tokenPayload mirrors the backend's password-grant response.
type tokenPayload struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int64           `json:"expires_in"`
	User         authUserPayload `json:"user"`
}

// CreateUser creates an auth account through the admin endpoint.
func (c *adminClient) CreateUser(ctx context.Context, email, password string, autoConfirm bool) (*service.AuthUser, error) {
	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": autoConfirm,
	}

	var payload authUserPayload
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", c.serviceKey, body, &payload); err != nil {
		return nil, errors.Wrap(err, "create auth user")
	}
	c.logger.Debug("Created auth user", slog.String("email", email), slog.Any("user_id", payload.ID))

	return payload.toAuthUser(), nil
}

// GetUser retrieves an auth account by id.
func (c *adminClient) GetUser(ctx context.Context, id uuid.UUID) (*service.AuthUser, error) {
	var payload authUserPayload
	err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+id.String(), c.serviceKey, nil, &payload)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "get auth user")
	}

	return payload.toAuthUser(), nil
}

// UpdateRoleClaims mirrors the role set into the account's token claims.
func (c *adminClient) UpdateRoleClaims(ctx context.Context, id uuid.UUID, roles []string) error {
	body := map[string]any{
		"app_metadata": map[string]any{"roles": roles},
	}

	if err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+id.String(), c.serviceKey, body, nil); err != nil {
		if isNotFound(err) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "update role claims")
	}

	return nil
}

// DeleteUser removes an auth account by id.
func (c *adminClient) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id.String(), c.serviceKey, nil, nil)
	if err != nil {
		if isNotFound(err) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "delete auth user")
	}
	c.logger.Debug("Deleted auth user", slog.Any("user_id", id))

	return nil
}

// SignInWithPassword performs a password grant and returns the session.
func (c *adminClient) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var payload tokenPayload
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, body, &payload); err != nil {
		return nil, errors.Wrap(err, "password sign-in")
	}

	return &entity.Session{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		TokenType:    payload.TokenType,
		ExpiresAt:    time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
		UserID:       payload.User.ID,
		Email:        payload.User.Email,
	}, nil
}

// upstreamErrorPayload covers the error body shapes the backend emits.
type upstreamErrorPayload struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error"`
}

func (p *upstreamErrorPayload) text() string {
	for _, candidate := range []string{p.Msg, p.Message, p.ErrorDescription, p.ErrorCode} {
		if candidate != "" {
			return candidate
		}
	}

	return ""
}

// do executes one request. Upstream rejections are converted into
// UpstreamError values carrying the raw backend message; they are never
// translated, so a failed setup surfaces the real error.
func (c *adminClient) do(ctx context.Context, method, path, apiKey string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		payload := new(upstreamErrorPayload)
		_ = json.Unmarshal(raw, payload)
		message := payload.text()
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		return domainerrors.NewUpstreamError(resp.StatusCode, message, string(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decode response body")
		}
	}

	return nil
}

// isNotFound reports whether err is an upstream 404.
func isNotFound(err error) bool {
	appErr, ok := errors.AsType[domainerrors.AppError](err)

	return ok && appErr.HTTPCode() == http.StatusNotFound
}
