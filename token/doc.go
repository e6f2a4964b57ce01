// Package token inspects backend-issued bearer tokens without verifying
// them.
//
// # Design
//
// The backend signs its own JWTs; this client holds no keys and must treat
// tokens as opaque. Inspect reads claims via an unverified parse so the
// session layer can skip a hydration round-trip when the persisted token is
// already past its exp claim.
//
// # What this package must NOT do
//
//   - Accept a token as proof of anything. Expiry here is an optimization,
//     never an authorization decision.
//   - Verify signatures or validate claims beyond structural parsing.
package token
