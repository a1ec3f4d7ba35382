// Package currency resolves the currency display symbol for a client from its
// IP address using an external geolocation service. Lookups are best effort:
// every failure yields the configured fallback symbol.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"go.uber.org/zap"
)

const maxBodySize = 64 << 10

// Config controls the geolocation lookup.
type Config struct {
	Enabled        bool          `yaml:"enabled"`
	Endpoint       string        `yaml:"endpoint"`
	Timeout        time.Duration `yaml:"timeout"`
	FallbackSymbol string        `yaml:"fallbackSymbol"`
	CacheSize      int           `yaml:"cacheSize"`
	CacheTTL       time.Duration `yaml:"cacheTTL"`
	Redis          RedisConfig   `yaml:"redis"`
}

// DefaultConfig returns an enabled lookup against the default endpoint.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Endpoint:       constants.DefaultCurrencyEndpoint,
		Timeout:        constants.DefaultCurrencyTimeout,
		FallbackSymbol: constants.DefaultCurrencySymbol,
		CacheSize:      constants.DefaultCurrencyCacheSize,
		CacheTTL:       constants.DefaultCurrencyCacheTTL,
	}
}

// Resolver looks up currency symbols by client IP.
type Resolver struct {
	cfg    Config
	http   *http.Client
	store  Store
	logger *zap.Logger
}

type geoResponse struct {
	Currency string `json:"currency"`
	Error    bool   `json:"error"`
	Reason   string `json:"reason"`
}

// NewResolver creates a resolver. Zero values in cfg take their defaults.
func NewResolver(logger *zap.Logger, cfg Config) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.FallbackSymbol == "" {
		cfg.FallbackSymbol = defaults.FallbackSymbol
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}

	var store Store = newMemoryStore(cfg.CacheSize, cfg.CacheTTL)
	if cfg.Redis.Addr != "" {
		store = newRedisStore(cfg.Redis, cfg.Timeout, cfg.CacheTTL)
	}

	return &Resolver{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		store:  store,
		logger: logger,
	}
}

// Close releases the symbol store.
func (r *Resolver) Close() error {
	if r == nil {
		return nil
	}
	return r.store.Close()
}

// Fallback returns the symbol used when a lookup fails.
func (r *Resolver) Fallback() string {
	return r.cfg.FallbackSymbol
}

// Symbol returns the display symbol of the currency used where ip is located,
// or the fallback symbol when it cannot be determined.
func (r *Resolver) Symbol(ctx context.Context, ip string) string {
	if r == nil {
		return constants.DefaultCurrencySymbol
	}
	if !r.cfg.Enabled {
		return r.cfg.FallbackSymbol
	}

	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast() {
		return r.cfg.FallbackSymbol
	}
	key := parsed.String()

	if symbol, ok := r.store.Get(ctx, key); ok {
		return symbol
	}

	symbol, err := r.lookup(ctx, key)
	if err != nil {
		r.logger.Debug("currency lookup failed, using fallback symbol",
			zap.String("op", "currency.Symbol"),
			zap.String("ip", key),
			zap.String("fallback", r.cfg.FallbackSymbol),
			zap.Error(err),
		)
		return r.cfg.FallbackSymbol
	}

	if err := r.store.Set(ctx, key, symbol); err != nil {
		r.logger.Warn("failed to cache currency symbol",
			zap.String("op", "currency.Symbol"),
			zap.String("ip", key),
			zap.Error(err),
		)
	}
	return symbol
}

func (r *Resolver) lookup(ctx context.Context, ip string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s/json/", r.cfg.Endpoint, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload geoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if payload.Error {
		return "", fmt.Errorf("service error: %s", payload.Reason)
	}
	if payload.Currency == "" {
		return "", fmt.Errorf("response has no currency field")
	}

	symbol, ok := SymbolForCode(payload.Currency)
	if !ok {
		return "", fmt.Errorf("unknown currency code %q", payload.Currency)
	}
	return symbol, nil
}
