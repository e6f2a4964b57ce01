// Package credstore persists the durable credential mirror — the last known
// account record and bearer token — that lets a restarted process rehydrate
// its session without re-authenticating.
//
// # Design
//
// One Credentials value per store, written whole. Three backends: a JSON
// file with atomic rename (interactive tools), process memory (tests), and
// Redis with optional TTL (shared server-side sessions).
//
// # Architecture boundaries
//
// This package owns persistence only. It never interprets the user record
// (kept as raw JSON) and never talks to the exchange backend.
//
// # What this package must NOT do
//
//   - Import the quantex root package.
//   - Validate or refresh tokens; expiry is the session layer's concern.
package credstore
