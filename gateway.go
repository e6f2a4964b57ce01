package quantex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// errTransport wraps connection, serialization, and decoding failures so
// the audit layer can classify them apart from backend rejections.
var errTransport = errors.New("transport failure")

// APIError is the backend's rejection of a request. Error returns the
// envelope's message field verbatim — the same human-readable text the
// product surfaces in its alert banners.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

// Error describes the error operation and its observable behavior.
//
// Error may return an error when input validation, dependency calls, or security checks fail.
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *APIError) Error() string {
	return e.Message
}

type errorEnvelope struct {
	Message string `json:"message"`
}

// do is the single gateway every backend call flows through: one place
// defines the wire contract. It serializes the optional body as JSON,
// attaches the bearer token and request ID, and distinguishes success from
// failure purely by HTTP status range. A 2xx body is decoded verbatim into
// out; anything else becomes an *APIError carrying the envelope's message.
// No retries, no dedup: one call, one request.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil || c.httpClient == nil {
		return ErrClientNotReady
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request body: %v", errTransport, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.API.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", errTransport, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.API.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.API.UserAgent)
	}

	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	if key := idempotencyKeyFromContext(ctx); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	var start time.Time
	if c.metrics.LatencyEnabled() {
		start = time.Now()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metricInc(MetricGatewayFailure)
		if ctx.Err() != nil {
			err = ctx.Err()
		} else {
			err = fmt.Errorf("%w: %v", errTransport, err)
		}
		c.emitAudit(ctx, auditEventGatewayError, false, "", path, err, nil)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
		}

		var envelope errorEnvelope
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			_ = json.Unmarshal(data, &envelope)
		}
		apiErr.Message = envelope.Message
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}

		c.metricInc(MetricGatewayFailure)
		c.emitAudit(ctx, auditEventGatewayError, false, "", path, apiErr, func() map[string]string {
			return map[string]string{
				"status": fmt.Sprintf("%d", resp.StatusCode),
			}
		})
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metricInc(MetricGatewayFailure)
			decodeErr := fmt.Errorf("%w: decode response body: %v", errTransport, err)
			c.emitAudit(ctx, auditEventGatewayError, false, "", path, decodeErr, nil)
			return decodeErr
		}
	}

	c.metricInc(MetricGatewaySuccess)
	if c.metrics.LatencyEnabled() {
		c.metrics.Observe(MetricGatewayLatency, time.Since(start))
	}
	return nil
}

// withFreshIdempotencyKey threads an idempotency key into ctx for
// money-moving submissions, generating one when the caller did not choose
// their own via [WithIdempotencyKey].
func withFreshIdempotencyKey(ctx context.Context) context.Context {
	if idempotencyKeyFromContext(ctx) != "" {
		return ctx
	}
	return WithIdempotencyKey(ctx, uuid.NewString())
}
