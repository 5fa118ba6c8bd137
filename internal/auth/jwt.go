// Package auth validates bearer tokens and resolves the calling party.
// Tokens are issued by the account service; this side only verifies the
// HS256 signature and extracts the party identity and role.
package auth

import (
	"errors"
	"strings"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/party"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthorization = errors.New("invalid authorization header")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidClaims        = errors.New("invalid claims")
)

// Principal represents the authenticated caller extracted from a JWT.
type Principal struct {
	PartyID kernel.UUID
	Role    party.Role
}

// ParseBearer extracts and validates a Bearer JWT from an Authorization
// header value and returns the calling principal.
func ParseBearer(header string, secret string) (*Principal, error) {
	if header == "" {
		return nil, ErrMissingAuthorization
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrInvalidAuthorization
	}

	return ParseToken(strings.TrimSpace(parts[1]), secret)
}

// ParseToken validates a raw JWT string and extracts the principal.
// Only HS256 signatures are accepted.
func ParseToken(tokenStr string, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	type claims struct {
		Role string `json:"role"`
		jwt.RegisteredClaims
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	c, _ := tok.Claims.(*claims)
	if c == nil || c.Subject == "" || c.Role == "" {
		return nil, ErrInvalidClaims
	}

	partyID, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	role, err := party.RoleFromString(strings.ToLower(c.Role))
	if err != nil {
		return nil, ErrInvalidClaims
	}

	return &Principal{PartyID: partyID, Role: role}, nil
}
