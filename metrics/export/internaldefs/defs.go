package internaldefs

import (
	quantex "github.com/quantex-exchange/quantex-go"
)

// CounterDef defines a public type used by quantex APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   quantex.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by quantex APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   quantex.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the exchange client.
var CounterDefs = []CounterDef{
	{ID: quantex.MetricLoginSuccess, Name: "quantex_login_success_total", Help: "Successful login attempts."},
	{ID: quantex.MetricLoginFailure, Name: "quantex_login_failure_total", Help: "Failed login attempts."},
	{ID: quantex.MetricLogout, Name: "quantex_logout_total", Help: "Logout operations."},
	{ID: quantex.MetricHydrateSuccess, Name: "quantex_hydrate_success_total", Help: "Session hydrations completed with a revalidated user."},
	{ID: quantex.MetricHydrateEmpty, Name: "quantex_hydrate_empty_total", Help: "Session hydrations finding no persisted credentials."},
	{ID: quantex.MetricHydrateFailure, Name: "quantex_hydrate_failure_total", Help: "Session hydrations failing to revalidate."},
	{ID: quantex.MetricHydrateTimeout, Name: "quantex_hydrate_timeout_total", Help: "Session hydrations aborted by the hydrate timeout."},
	{ID: quantex.MetricRevalidateCoalesced, Name: "quantex_revalidate_coalesced_total", Help: "Revalidation calls coalesced into an in-flight fetch."},
	{ID: quantex.MetricGatewaySuccess, Name: "quantex_gateway_success_total", Help: "Gateway calls answered with a 2xx status."},
	{ID: quantex.MetricGatewayFailure, Name: "quantex_gateway_failure_total", Help: "Gateway calls failing on transport or a non-2xx status."},
	{ID: quantex.MetricRegistrationSuccess, Name: "quantex_registration_success_total", Help: "Confirmed registrations."},
	{ID: quantex.MetricRegistrationFailure, Name: "quantex_registration_failure_total", Help: "Failed registration requests and confirmations."},
	{ID: quantex.MetricPasswordResetRequest, Name: "quantex_password_reset_request_total", Help: "Password reset requests."},
	{ID: quantex.MetricPasswordResetConfirm, Name: "quantex_password_reset_confirm_total", Help: "Password reset confirmations."},
	{ID: quantex.MetricDepositSubmitted, Name: "quantex_deposit_submitted_total", Help: "Accepted deposit submissions."},
	{ID: quantex.MetricWithdrawalSubmitted, Name: "quantex_withdrawal_submitted_total", Help: "Accepted withdrawal submissions."},
	{ID: quantex.MetricTransferSubmitted, Name: "quantex_transfer_submitted_total", Help: "Accepted transfer submissions."},
	{ID: quantex.MetricConversionSubmitted, Name: "quantex_conversion_submitted_total", Help: "Accepted conversion submissions."},
	{ID: quantex.MetricOrderSubmitted, Name: "quantex_order_submitted_total", Help: "Accepted order and position submissions."},
	{ID: quantex.MetricKYCSubmitted, Name: "quantex_kyc_submitted_total", Help: "Accepted KYC submissions."},
	{ID: quantex.MetricAdminAction, Name: "quantex_admin_action_total", Help: "Accepted back-office mutations."},
	{ID: quantex.MetricMarketPollSuccess, Name: "quantex_market_poll_success_total", Help: "Market poll cycles completing without symbol failures."},
	{ID: quantex.MetricMarketPollFailure, Name: "quantex_market_poll_failure_total", Help: "Market poll cycles with at least one failed symbol."},
}

// HistogramDefs is an exported constant or variable used by the exchange client.
var HistogramDefs = []HistogramDef{
	{ID: quantex.MetricGatewayLatency, Name: "quantex_gateway_latency_seconds", Help: "Gateway call latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the exchange client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the exchange client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
