// Package authtest provides an in-memory stand-in for the backend's auth
// API. It implements the small surface the harness uses (admin user CRUD,
// claims updates, password grants) so client and usecase tests run without
// a live backend.
package authtest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"golang.org/x/crypto/bcrypt"
)

const (
	// ServiceKey is the service-role credential the fake accepts on admin routes.
	ServiceKey = "authtest-service-role-key"

	tokenTTL = time.Hour
)

var signingSecret = []byte("authtest-signing-secret")

type userRecord struct {
	id           uuid.UUID
	email        string
	passwordHash []byte
	confirmedAt  *time.Time
	roles        []string
}

// Server is a running in-memory auth backend.
type Server struct {
	httpServer *httptest.Server

	mu    sync.Mutex
	users map[uuid.UUID]*userRecord
}

// New starts an in-memory auth backend. Callers own the returned server and
// must Close it.
func New() *Server {
	srv := &Server{
		users: make(map[uuid.UUID]*userRecord),
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(slogecho.New(slog.New(slog.NewTextHandler(io.Discard, nil))))
	echoServer.Use(middleware.Recover())

	admin := echoServer.Group("/auth/v1/admin", srv.requireServiceKey)
	admin.POST("/users", srv.createUser)
	admin.GET("/users/:id", srv.getUser)
	admin.PUT("/users/:id", srv.updateUser)
	admin.DELETE("/users/:id", srv.deleteUser)

	echoServer.POST("/auth/v1/token", srv.token)

	srv.httpServer = httptest.NewServer(echoServer)

	return srv
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// HasUser reports whether an account with the given id exists.
func (s *Server) HasUser(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]

	return ok
}

// UserCount returns the number of accounts currently stored.
func (s *Server) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}

// RolesOf returns the role claims stored for an account.
func (s *Server) RolesOf(id uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		return append([]string(nil), user.roles...)
	}

	return nil
}

func (s *Server) requireServiceKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("apikey") != ServiceKey {
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid service key"})
		}

		return next(c)
	}
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

func (s *Server) createUser(c echo.Context) error {
	req := new(createUserRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"msg": "email and password are required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "hash password"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.email == req.Email {
			return c.JSON(http.StatusUnprocessableEntity,
				echo.Map{"msg": "A user with this email address has already been registered"})
		}
	}

	user := &userRecord{
		id:           uuid.New(),
		email:        req.Email,
		passwordHash: hash,
	}
	if req.EmailConfirm {
		now := time.Now()
		user.confirmedAt = &now
	}
	s.users[user.id] = user

	return c.JSON(http.StatusOK, userJSON(user))
}

func (s *Server) getUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid user id"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}

	return c.JSON(http.StatusOK, userJSON(user))
}

type updateUserRequest struct {
	AppMetadata struct {
		Roles []string `json:"roles"`
	} `json:"app_metadata"`
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid user id"})
	}

	req := new(updateUserRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}
	user.roles = req.AppMetadata.Roles

	return c.JSON(http.StatusOK, userJSON(user))
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid user id"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
	}
	delete(s.users, id)

	return c.JSON(http.StatusOK, echo.Map{})
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) token(c echo.Context) error {
	if c.QueryParam("grant_type") != "password" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "unsupported grant type"})
	}

	req := new(tokenRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var user *userRecord
	for _, candidate := range s.users {
		if candidate.email == req.Email {
			user = candidate

			break
		}
	}
	if user == nil || bcrypt.CompareHashAndPassword(user.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Invalid login credentials"})
	}
	if user.confirmedAt == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Email not confirmed"})
	}

	accessToken, err := mintAccessToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "mint access token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": uuid.NewString(),
		"token_type":    "bearer",
		"expires_in":    int64(tokenTTL.Seconds()),
		"user":          userJSON(user),
	})
}

func mintAccessToken(user *userRecord) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.id.String(),
		"email": user.email,
		"roles": user.roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingSecret)
}

func userJSON(user *userRecord) echo.Map {
	payload := echo.Map{
		"id":    user.id.String(),
		"email": user.email,
		"app_metadata": echo.Map{
			"roles": user.roles,
		},
	}
	if user.confirmedAt != nil {
		payload["email_confirmed_at"] = user.confirmedAt
	}

	return payload
}
