// Package audit provides asynchronous audit event dispatch for the quantex
// client.
//
// # Design
//
// Events flow through a buffered channel into a single dispatcher
// goroutine, which forwards them to a pluggable Sink. Under backpressure
// the dispatcher either blocks the emitter or drops and counts, per
// configuration. Close drains the buffer before returning.
//
// # Architecture boundaries
//
// This package owns the event model, sinks, and dispatch. It never
// inspects event contents and performs no I/O beyond what a sink does.
//
// # What this package must NOT do
//
//   - Import the quantex root package or any sibling package.
//   - Block client operations when DropIfFull is configured.
package audit
