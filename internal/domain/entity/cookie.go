package entity

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"clubharness/internal/errors"
)

// cookiePayloadMarker prefixes the base64 session payload so the
// application can distinguish encoded sessions from legacy plain values.
const cookiePayloadMarker = "base64-"

// SessionCookie is the cookie the session bridge installs into a browser
// context. The permissive flags are intentional: this is test-only tooling,
// never production cookie policy.
type SessionCookie struct {
	Name     string // Derived from the backend project identifier.
	Value    string // Marker-prefixed base64 session payload.
	Domain   string // The application host under test.
	Path     string // Always "/".
	Secure   bool   // False; tests run over plain HTTP.
	HTTPOnly bool   // False; the app's client-side code reads the session.
	SameSite string // "Lax".
}

// SessionCookieName derives the session cookie name from the backend base
// URL: the leading subdomain label of its host identifies the backend
// project, following the backend's session-cookie naming convention.
func SessionCookieName(backendURL string) (string, error) {
	parsed, err := url.Parse(backendURL)
	if err != nil {
		return "", errors.Wrap(err, "parse backend URL")
	}

	label, _, _ := strings.Cut(parsed.Hostname(), ".")
	if label == "" {
		return "", errors.Errorf("cannot derive cookie name from backend URL %q", backendURL)
	}

	return "sb-" + label + "-auth-token", nil
}

// EncodeSessionValue serializes a session to the marker-prefixed base64
// JSON form the application expects in its session cookie.
func EncodeSessionValue(session *Session) (string, error) {
	if session == nil {
		return "", errors.New("nil session")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return "", errors.Wrap(err, "marshal session")
	}

	return cookiePayloadMarker + base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeSessionValue reverses EncodeSessionValue.
func DecodeSessionValue(value string) (*Session, error) {
	encoded, ok := strings.CutPrefix(value, cookiePayloadMarker)
	if !ok {
		return nil, errors.Errorf("session cookie value missing %q marker", cookiePayloadMarker)
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decode session payload")
	}

	session := new(Session)
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, errors.Wrap(err, "unmarshal session payload")
	}

	return session, nil
}

// NewSessionCookie builds the complete cookie for a session: name derived
// from the backend URL, value encoded from the session, scoped to the
// application host under test.
func NewSessionCookie(session *Session, backendURL, appBaseURL string) (SessionCookie, error) {
	name, err := SessionCookieName(backendURL)
	if err != nil {
		return SessionCookie{}, err
	}

	value, err := EncodeSessionValue(session)
	if err != nil {
		return SessionCookie{}, err
	}

	app, err := url.Parse(appBaseURL)
	if err != nil {
		return SessionCookie{}, errors.Wrap(err, "parse app base URL")
	}
	if app.Hostname() == "" {
		return SessionCookie{}, errors.Errorf("app base URL %q has no host", appBaseURL)
	}

	return SessionCookie{
		Name:     name,
		Value:    value,
		Domain:   app.Hostname(),
		Path:     "/",
		Secure:   false,
		HTTPOnly: false,
		SameSite: "Lax",
	}, nil
}
