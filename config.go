package quantex

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by quantex APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Market  MarketConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by quantex APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by quantex APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// HydrateTimeout bounds the revalidation fetch during session
	// hydration. When the backend does not respond within it, the fetch is
	// aborted and hydration completes without a user update.
	HydrateTimeout time.Duration

	// InvalidateOnRefreshFailure clears the cached user when a background
	// revalidation fails. Default false: the stale record is kept and the
	// failure only logged, matching the product's observed behavior.
	InvalidateOnRefreshFailure bool

	// TokenLeeway widens the bearer-token expiry check during hydration.
	// A persisted token within leeway of its exp claim is treated as dead.
	TokenLeeway time.Duration
}

/*
====================================
MARKET DATA CONFIG
====================================
*/

// SymbolConfig defines a public type used by quantex APIs.
//
// SymbolConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SymbolConfig struct {
	Symbol        string
	MarginPercent float64
}

// MarketConfig defines a public type used by quantex APIs.
//
// MarketConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MarketConfig struct {
	Enabled      bool
	BaseURL      string
	PollInterval time.Duration
	Timeout      time.Duration
	Symbols      []SymbolConfig
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by quantex APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by quantex APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   30 * time.Second,
			UserAgent: "quantex-go",
		},
		Session: SessionConfig{
			HydrateTimeout:             30 * time.Second,
			InvalidateOnRefreshFailure: false,
			TokenLeeway:                30 * time.Second,
		},
		Market: MarketConfig{
			Enabled:      false,
			PollInterval: 2 * time.Minute,
			Timeout:      15 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if len(cfg.Market.Symbols) > 0 {
		out.Market.Symbols = make([]SymbolConfig, len(cfg.Market.Symbols))
		copy(out.Market.Symbols, cfg.Market.Symbols)
	}
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("API BaseURL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}

	// Session
	if c.Session.HydrateTimeout <= 0 {
		return errors.New("Session HydrateTimeout must be > 0")
	}
	if c.Session.TokenLeeway < 0 {
		return errors.New("Session TokenLeeway must be >= 0")
	}

	// Market
	if c.Market.Enabled {
		if strings.TrimSpace(c.Market.BaseURL) == "" {
			return errors.New("Market BaseURL is required when market polling is enabled")
		}
		mu, err := url.Parse(c.Market.BaseURL)
		if err != nil || mu.Scheme == "" || mu.Host == "" {
			return errors.New("Market BaseURL must be an absolute URL")
		}
		if c.Market.PollInterval <= 0 {
			return errors.New("Market PollInterval must be > 0")
		}
		if c.Market.Timeout <= 0 {
			return errors.New("Market Timeout must be > 0")
		}
		if len(c.Market.Symbols) == 0 {
			return errors.New("Market Symbols must be provided when market polling is enabled")
		}
		for _, s := range c.Market.Symbols {
			if strings.TrimSpace(s.Symbol) == "" {
				return errors.New("Market Symbols entries must name a symbol")
			}
			if s.MarginPercent < 0 {
				return errors.New("Market MarginPercent must be >= 0")
			}
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	return nil
}
