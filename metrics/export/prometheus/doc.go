// Package prometheus provides Prometheus collectors for quantex metrics.
//
// [NewPrometheusExporter] accepts a [quantex.Client] and exposes an [http.Handler]
// that renders all quantex counters and histograms in Prometheus text exposition format.
// Counter names are prefixed quantex_*_total; the single histogram is
// quantex_gateway_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
