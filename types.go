package quantex

import (
	"io"
	"time"

	internalaudit "github.com/quantex-exchange/quantex-go/internal/audit"
)

// SessionState represents the lifecycle state of the client session.
//
// The session starts in [StateIdle], moves to [StateHydrating] while the
// persisted credential mirror is being revalidated against the backend, and
// settles in [StateReady] once that attempt resolves — success, failure, or
// timeout. State transitions are driven purely by I/O completion; no
// artificial delays are applied.
type SessionState uint8

const (
	// StateIdle is an exported constant or variable used by the exchange client.
	StateIdle SessionState = iota
	// StateHydrating is an exported constant or variable used by the exchange client.
	StateHydrating
	// StateReady is an exported constant or variable used by the exchange client.
	StateReady
)

// String returns the lowercase state name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHydrating:
		return "hydrating"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// User is the canonical account record returned by the backend. The client
// treats it as a cache of the server-side account; only ID is load-bearing
// on this side (it keys the revalidation fetch).
type User struct {
	ID         string  `json:"_id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Verified   bool    `json:"verified"`
	KYCStatus  string  `json:"kycStatus"`
	TraderTier string  `json:"traderTier"`
	Affiliate  bool    `json:"affiliate"`
	CreatedAt  string  `json:"createdAt"`
	Balances   Balance `json:"balances"`
}

// Balance mirrors the backend's wallet figures. Values are display copies;
// the authoritative ledger lives server-side.
type Balance struct {
	Available map[string]float64 `json:"available"`
	Locked    map[string]float64 `json:"locked"`
}

// LoginResult is returned by [Client.Login]. It includes the authenticated
// account record and the bearer token the backend issued for it.
type LoginResult struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Quote is a single market-data figure exposed by [Client.Quotes]. Price has
// the configured per-symbol margin already applied; RawPrice is the value
// the provider returned.
type Quote struct {
	Symbol        string
	Price         float64
	RawPrice      float64
	Volume        float64
	ChangePercent float64
	FetchedAt     time.Time
}

// AuditEvent is a structured audit record emitted by the client.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
