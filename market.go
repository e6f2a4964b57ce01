package quantex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// tickerPayload mirrors the upstream 24h ticker document. Numeric fields
// arrive as strings on the wire.
type tickerPayload struct {
	Symbol        string `json:"symbol"`
	LastPrice     string `json:"lastPrice"`
	Volume        string `json:"volume"`
	PriceChangePc string `json:"priceChangePercent"`
}

// marketPoller keeps an in-memory quote table refreshed on a fixed
// interval. It runs one goroutine for the lifetime of the client and
// never blocks readers on the network: Quotes always serves the last
// successful snapshot.
type marketPoller struct {
	config    MarketConfig
	client    *http.Client
	metrics   *Metrics
	onFailure func(error)

	mu     sync.RWMutex
	quotes map[string]Quote

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func newMarketPoller(cfg MarketConfig, metrics *Metrics, onFailure func(error)) *marketPoller {
	p := &marketPoller{
		config:    cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		metrics:   metrics,
		onFailure: onFailure,
		quotes:    make(map[string]Quote, len(cfg.Symbols)),
		done:      make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *marketPoller) run() {
	defer p.wg.Done()

	// Prime the table immediately; navigation to a trading page should not
	// have to wait out the first full interval.
	p.poll(context.Background())

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.poll(context.Background())
		case <-p.done:
			return
		}
	}
}

// poll fetches every configured symbol and merges the results. A symbol
// that fails keeps its previous quote; the table never loses entries to a
// transient upstream error.
func (p *marketPoller) poll(ctx context.Context) {
	failed := false
	for _, sym := range p.config.Symbols {
		quote, err := p.fetchQuote(ctx, sym)
		if err != nil {
			failed = true
			if p.onFailure != nil {
				p.onFailure(fmt.Errorf("symbol %s: %w", sym.Symbol, err))
			}
			continue
		}
		p.mu.Lock()
		p.quotes[sym.Symbol] = quote
		p.mu.Unlock()
	}
	if p.metrics != nil && p.metrics.Enabled() {
		if failed {
			p.metrics.Inc(MetricMarketPollFailure)
		} else {
			p.metrics.Inc(MetricMarketPollSuccess)
		}
	}
}

func (p *marketPoller) fetchQuote(ctx context.Context, sym SymbolConfig) (Quote, error) {
	endpoint := p.config.BaseURL + "/ticker/24hr?symbol=" + url.QueryEscape(strings.ToUpper(sym.Symbol)+"USDT")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Quote{}, fmt.Errorf("ticker endpoint returned status %d", resp.StatusCode)
	}

	var payload tickerPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("decode ticker payload: %w", err)
	}
	raw, err := strconv.ParseFloat(payload.LastPrice, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parse last price %q: %w", payload.LastPrice, err)
	}
	volume, _ := strconv.ParseFloat(payload.Volume, 64)
	change, _ := strconv.ParseFloat(payload.PriceChangePc, 64)

	return Quote{
		Symbol:        sym.Symbol,
		RawPrice:      raw,
		Price:         raw * (1 + sym.MarginPercent/100),
		Volume:        volume,
		ChangePercent: change,
		FetchedAt:     time.Now(),
	}, nil
}

func (p *marketPoller) snapshot() map[string]Quote {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]Quote, len(p.quotes))
	for k, v := range p.quotes {
		out[k] = v
	}
	return out
}

func (p *marketPoller) quote(symbol string) (Quote, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	q, ok := p.quotes[symbol]
	return q, ok
}

// Close stops the polling goroutine and waits for it to exit. Safe to
// call more than once.
func (p *marketPoller) Close() {
	p.closeOnce.Do(func() { close(p.done) })
	p.wg.Wait()
}

// Quotes returns a copy of the current quote table, keyed by symbol.
// Prices already include the configured exchange margin; RawPrice carries
// the upstream value.
//
// Quotes may return an error when market polling is disabled on this
// client.
func (c *Client) Quotes() (map[string]Quote, error) {
	if c.market == nil {
		return nil, ErrMarketDisabled
	}
	return c.market.snapshot(), nil
}

// Quote returns the latest quote for one symbol. The boolean reports
// whether a quote has been fetched for it yet.
//
// Quote may return an error when market polling is disabled on this
// client.
func (c *Client) Quote(symbol string) (Quote, bool, error) {
	if c.market == nil {
		return Quote{}, false, ErrMarketDisabled
	}
	q, ok := c.market.quote(symbol)
	return q, ok, nil
}

// RefreshQuotes forces an immediate poll cycle outside the regular
// interval. It blocks until the cycle completes or ctx is done.
//
// RefreshQuotes may return an error when market polling is disabled on
// this client.
func (c *Client) RefreshQuotes(ctx context.Context) error {
	if c.market == nil {
		return ErrMarketDisabled
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.market.poll(ctx)
	return ctx.Err()
}
