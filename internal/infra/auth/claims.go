package auth

import (
	"clubharness/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// RolesFromToken extracts the mirrored role claims from an access token
// without verifying its signature. The harness is not the token's audience;
// it only asserts that the role mirror reached the claims, so signature
// verification stays with the application backend.
func RolesFromToken(accessToken string) ([]string, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, errors.Wrap(err, "parse access token")
	}

	rawRoles, ok := claims["roles"]
	if !ok {
		return nil, nil
	}

	values, ok := rawRoles.([]any)
	if !ok {
		return nil, errors.Errorf("roles claim has unexpected type %T", rawRoles)
	}

	roles := make([]string, 0, len(values))
	for _, value := range values {
		role, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("role entry has unexpected type %T", value)
		}
		roles = append(roles, role)
	}

	return roles, nil
}
