package quantex

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/quantex-exchange/quantex-go/credstore"
	internalaudit "github.com/quantex-exchange/quantex-go/internal/audit"
	"github.com/quantex-exchange/quantex-go/token"
)

// Builder defines a public type used by quantex APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config     Config
	store      credstore.Store
	httpClient *http.Client
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build assembles the client. It performs no I/O: the session starts in
// [StateIdle] and the caller owns the hydration lifecycle via
// [Client.Hydrate]. Market polling, when enabled, starts immediately.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.Market.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Market.BaseURL), "/")

	if b.store == nil {
		return nil, ErrNoCredentialStore
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}

	client := &Client{
		config:     cfg,
		httpClient: httpClient,
		store:      b.store,
		inspector:  token.NewInspector(),
		metrics:    NewMetrics(cfg.Metrics),
	}
	client.session.state = StateIdle

	client.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	if cfg.Market.Enabled {
		client.market = newMarketPoller(cfg.Market, client.metrics, func(err error) {
			client.emitAudit(context.Background(), auditEventMarketPollFailure, false, "", "", err, nil)
		})
	}

	b.built = true

	return client, nil
}
