// Package quantex provides the official Go client for the Quantex exchange
// REST API: session bootstrap from durable credential storage, a single
// request gateway carrying the wire contract, typed operation groups for
// account, wallet, trading, KYC, affiliate, and back-office endpoints, and a
// background market-data poller.
//
// The package is designed for concurrent workloads: Client methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// quantex is the public surface. It exposes [Client], [Builder], [Config],
// and value types (User, Quote, MetricsSnapshot, etc.). Credential
// persistence lives in credstore/, bearer-token inspection in token/, and
// audit dispatch under internal/. Metric export (Prometheus, OTel) lives in
// metrics/export/ and reads Snapshot values.
//
// # What this package must NOT do
//
//   - Recompute or enforce any business rule the backend owns (balances,
//     limits, approvals). Client-side previews are UX conveniences only.
//   - Verify bearer-token signatures. The client holds no keys; tokens are
//     opaque credentials inspected only for expiry.
//   - Retry, deduplicate, or reorder gateway calls. One call, one request.
//
// # Wire contract
//
// Every backend response is a JSON envelope. Success is an HTTP 2xx status;
// the body is decoded verbatim into the caller's result struct. Failure is
// any other status; the envelope's "message" field becomes the error text,
// surfaced as [*APIError].
package quantex
