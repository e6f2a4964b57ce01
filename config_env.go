package quantex

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ConfigFromEnv builds a [Config] from environment variables, loading a
// .env file first when one exists. Unset variables fall back to the
// library defaults.
//
// Recognized variables:
//
//	QUANTEX_API_BASE_URL        backend base URL (required to Build)
//	QUANTEX_API_TIMEOUT_SECONDS gateway timeout
//	QUANTEX_HYDRATE_TIMEOUT_SECONDS
//	QUANTEX_MARKET_BASE_URL     market-data provider base URL
//	QUANTEX_MARKET_POLL_MINUTES poll interval
//	QUANTEX_MARKET_SYMBOLS      comma list, "BTC:1.5,ETH:2" (symbol:margin%)
func ConfigFromEnv() Config {
	// Missing .env is not an error; real env vars still apply.
	_ = godotenv.Load()

	cfg := defaultConfig()
	cfg.API.BaseURL = strings.TrimSpace(os.Getenv("QUANTEX_API_BASE_URL"))

	if secs := envInt("QUANTEX_API_TIMEOUT_SECONDS"); secs > 0 {
		cfg.API.Timeout = time.Duration(secs) * time.Second
	}
	if secs := envInt("QUANTEX_HYDRATE_TIMEOUT_SECONDS"); secs > 0 {
		cfg.Session.HydrateTimeout = time.Duration(secs) * time.Second
	}

	if base := strings.TrimSpace(os.Getenv("QUANTEX_MARKET_BASE_URL")); base != "" {
		cfg.Market.Enabled = true
		cfg.Market.BaseURL = base
	}
	if mins := envInt("QUANTEX_MARKET_POLL_MINUTES"); mins > 0 {
		cfg.Market.PollInterval = time.Duration(mins) * time.Minute
	}
	if symbols := parseSymbolList(os.Getenv("QUANTEX_MARKET_SYMBOLS")); len(symbols) > 0 {
		cfg.Market.Symbols = symbols
	}

	return cfg
}

func envInt(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return v
}

func parseSymbolList(input string) []SymbolConfig {
	var out []SymbolConfig
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		symbol, marginStr, found := strings.Cut(part, ":")
		entry := SymbolConfig{Symbol: strings.TrimSpace(symbol)}
		if entry.Symbol == "" {
			continue
		}
		if found {
			if margin, err := strconv.ParseFloat(strings.TrimSpace(marginStr), 64); err == nil && margin >= 0 {
				entry.MarginPercent = margin
			}
		}
		out = append(out, entry)
	}
	return out
}
