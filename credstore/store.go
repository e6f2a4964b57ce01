package credstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when no credentials are persisted.
var ErrNotFound = errors.New("credentials not found")

// Credentials is the durable mirror of the authenticated session: the last
// known account record and the bearer token issued for it. Both are written
// together so the mirror never half-updates across a crash.
type Credentials struct {
	User  json.RawMessage `json:"user"`
	Token string          `json:"token"`
}

// Store persists one Credentials value across process restarts. All
// implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
