package quantex

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newMarketBackend serves the upstream ticker format for a fixed price
// table. The failing flag flips every symbol fetch to a 500.
func newMarketBackend(t *testing.T, prices map[string]string, failing *atomic.Bool) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing != nil && failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		symbol := r.URL.Query().Get("symbol")
		price, ok := prices[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tickerPayload{
			Symbol:        symbol,
			LastPrice:     price,
			Volume:        "1234.5",
			PriceChangePc: "2.5",
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newMarketTestClient(t *testing.T, marketURL string, symbols []SymbolConfig) *Client {
	t.Helper()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	}), func(cfg *Config) {
		cfg.Market.Enabled = true
		cfg.Market.BaseURL = marketURL
		cfg.Market.PollInterval = time.Hour // only the prime and manual refreshes
		cfg.Market.Timeout = 5 * time.Second
		cfg.Market.Symbols = symbols
	})
	return client
}

func TestMarketQuotesApplyMargin(t *testing.T) {
	backend := newMarketBackend(t, map[string]string{
		"BTCUSDT": "50000",
		"ETHUSDT": "2500",
	}, nil)

	client := newMarketTestClient(t, backend.URL, []SymbolConfig{
		{Symbol: "BTC", MarginPercent: 2},
		{Symbol: "ETH", MarginPercent: 0},
	})

	if err := client.RefreshQuotes(context.Background()); err != nil {
		t.Fatalf("RefreshQuotes failed: %v", err)
	}

	btc, ok, err := client.Quote("BTC")
	if err != nil || !ok {
		t.Fatalf("Quote(BTC): ok=%v err=%v", ok, err)
	}
	if btc.RawPrice != 50000 {
		t.Fatalf("expected raw price 50000, got %v", btc.RawPrice)
	}
	if math.Abs(btc.Price-51000) > 1e-9 {
		t.Fatalf("expected margined price 51000, got %v", btc.Price)
	}
	if btc.ChangePercent != 2.5 {
		t.Fatalf("expected change percent 2.5, got %v", btc.ChangePercent)
	}

	eth, ok, err := client.Quote("ETH")
	if err != nil || !ok {
		t.Fatalf("Quote(ETH): ok=%v err=%v", ok, err)
	}
	if eth.Price != 2500 {
		t.Fatalf("expected unmargined price 2500, got %v", eth.Price)
	}

	quotes, err := client.Quotes()
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected quotes only for configured symbols, got %d", len(quotes))
	}
}

func TestMarketPollFailureKeepsPreviousQuotes(t *testing.T) {
	var failing atomic.Bool
	backend := newMarketBackend(t, map[string]string{"BTCUSDT": "50000"}, &failing)

	client := newMarketTestClient(t, backend.URL, []SymbolConfig{{Symbol: "BTC"}})

	if err := client.RefreshQuotes(context.Background()); err != nil {
		t.Fatalf("RefreshQuotes failed: %v", err)
	}
	if _, ok, _ := client.Quote("BTC"); !ok {
		t.Fatal("expected a quote after the first refresh")
	}

	failing.Store(true)
	if err := client.RefreshQuotes(context.Background()); err != nil {
		t.Fatalf("RefreshQuotes failed: %v", err)
	}

	q, ok, _ := client.Quote("BTC")
	if !ok || q.RawPrice != 50000 {
		t.Fatalf("expected the previous quote to survive a failed poll, got ok=%v %+v", ok, q)
	}
	if got := client.MetricsSnapshot().Counters[MetricMarketPollFailure]; got == 0 {
		t.Fatal("expected a market poll failure to be counted")
	}
}

func TestMarketDisabled(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "ok"})
	}), nil)

	if _, err := client.Quotes(); err != ErrMarketDisabled {
		t.Fatalf("expected ErrMarketDisabled, got %v", err)
	}
	if _, _, err := client.Quote("BTC"); err != ErrMarketDisabled {
		t.Fatalf("expected ErrMarketDisabled, got %v", err)
	}
	if err := client.RefreshQuotes(context.Background()); err != ErrMarketDisabled {
		t.Fatalf("expected ErrMarketDisabled, got %v", err)
	}
}

func TestPreviewConversionUsesMarginedPrices(t *testing.T) {
	backend := newMarketBackend(t, map[string]string{
		"BTCUSDT": "50000",
		"ETHUSDT": "2500",
	}, nil)

	client := newMarketTestClient(t, backend.URL, []SymbolConfig{
		{Symbol: "BTC"},
		{Symbol: "ETH"},
	})
	if err := client.RefreshQuotes(context.Background()); err != nil {
		t.Fatalf("RefreshQuotes failed: %v", err)
	}

	got, err := client.PreviewConversion("BTC", "ETH", 0.5)
	if err != nil {
		t.Fatalf("PreviewConversion failed: %v", err)
	}
	if math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected 10 ETH, got %v", got)
	}

	if _, err := client.PreviewConversion("BTC", "XRP", 1); err == nil {
		t.Fatal("expected an error for an unquoted symbol")
	}
}
