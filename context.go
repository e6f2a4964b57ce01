package quantex

import "context"

type requestIDContextKey struct{}
type idempotencyKeyContextKey struct{}

// WithRequestID attaches a caller-chosen request identifier to ctx. The
// gateway sends it as the X-Request-ID header instead of generating one,
// and audit events carry it for correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// WithIdempotencyKey attaches an idempotency key to ctx. Money-moving
// submissions (deposits, withdrawals, transfers, conversions, orders) send
// it as the Idempotency-Key header so a double-submit is collapsed
// server-side. When absent, each submission generates its own key.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyContextKey{}, key)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func idempotencyKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	key, _ := ctx.Value(idempotencyKeyContextKey{}).(string)
	return key
}
