package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is an exported constant or variable used by the exchange client.
var ErrMalformed = errors.New("malformed bearer token")

// BearerClaims defines a public type used by token APIs.
//
// BearerClaims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BearerClaims struct {
	UserID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// Inspector defines a public type used by token APIs.
//
// Inspector instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector describes the newinspector operation and its observable behavior.
//
// NewInspector may return an error when input validation, dependency calls, or security checks fail.
// NewInspector does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewInspector() *Inspector {
	return &Inspector{
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// Inspect parses the token's claims without verifying its signature. The
// client holds no signing keys; bearer tokens are opaque credentials and
// only their expiry is read, to avoid hydration round-trips that the
// backend would reject anyway.
func (i *Inspector) Inspect(tokenStr string) (*BearerClaims, error) {
	if tokenStr == "" {
		return nil, ErrMalformed
	}

	claims := &BearerClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Expired reports whether the token's exp claim is within leeway of now.
// Tokens without an exp claim are treated as unexpired; malformed tokens
// as expired.
func (i *Inspector) Expired(tokenStr string, leeway time.Duration, now time.Time) bool {
	claims, err := i.Inspect(tokenStr)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Add(leeway).Before(claims.ExpiresAt.Time)
}
