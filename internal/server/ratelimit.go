package server

import (
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	clientIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
	maxTrackedClients   = 10000
)

// RateLimitConfig bounds how often a single client may request calculations.
// A zero RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requestsPerMinute"`
	Burst             int `yaml:"burst"`
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client address. Idle clients are
// swept on access rather than by a background goroutine.
type rateLimiter struct {
	mu          sync.Mutex
	interval    time.Duration
	burst       int
	clients     map[string]*clientLimiter
	lastCleanup time.Time
	maxClients  int
	now         func() time.Time
}

// newRateLimiter returns nil when cfg disables limiting.
func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		interval:   time.Minute / time.Duration(cfg.RequestsPerMinute),
		burst:      burst,
		clients:    make(map[string]*clientLimiter),
		maxClients: maxTrackedClients,
		now:        time.Now,
	}
}

func (r *rateLimiter) allow(client string) bool {
	if r == nil {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastCleanup) > cleanupInterval {
		r.cleanup(now)
	}

	c, exists := r.clients[client]
	if !exists && len(r.clients) >= r.maxClients {
		r.evictRefilled(now)
	}
	if !exists {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Every(r.interval), r.burst)}
		r.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// retryAfter is the Retry-After value in whole seconds until one token refills.
func (r *rateLimiter) retryAfter() string {
	if r == nil {
		return "0"
	}
	seconds := math.Ceil(r.interval.Seconds())
	return strconv.Itoa(int(math.Max(seconds, 1)))
}

func (r *rateLimiter) cleanup(now time.Time) {
	for client, c := range r.clients {
		if now.Sub(c.lastSeen) > clientIdleThreshold {
			delete(r.clients, client)
		}
	}
	r.lastCleanup = now
}

// evictRefilled drops clients whose bucket is full again. A new limiter would
// start in the same state, so forgetting them changes no decision.
func (r *rateLimiter) evictRefilled(now time.Time) {
	for client, c := range r.clients {
		if c.limiter.TokensAt(now) >= float64(r.burst) {
			delete(r.clients, client)
		}
	}
}

func (r *rateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
