package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "loan-amortization:currency:"

// Store remembers resolved symbols per client IP.
type Store interface {
	Get(ctx context.Context, ip string) (string, bool)
	Set(ctx context.Context, ip string, symbol string) error
	Close() error
}

// RedisConfig points the symbol store at a shared Redis instance. An empty
// Addr keeps symbols in process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type memoryStore struct {
	cache *lruCache[string]
}

func newMemoryStore(size int, ttl time.Duration) *memoryStore {
	return &memoryStore{cache: newLRUCache[string](size, ttl)}
}

func (m *memoryStore) Get(_ context.Context, ip string) (string, bool) {
	return m.cache.get(ip)
}

func (m *memoryStore) Set(_ context.Context, ip string, symbol string) error {
	m.cache.set(ip, symbol)
	return nil
}

func (m *memoryStore) Close() error {
	return nil
}

// redisStore shares resolved symbols between server instances.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisStore(cfg RedisConfig, timeout, ttl time.Duration) *redisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   1,
	})
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Get(ctx context.Context, ip string) (string, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+ip).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *redisStore) Set(ctx context.Context, ip string, symbol string) error {
	if err := r.client.Set(ctx, redisKeyPrefix+ip, symbol, r.ttl).Err(); err != nil {
		return fmt.Errorf("storing currency symbol: %w", err)
	}
	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
