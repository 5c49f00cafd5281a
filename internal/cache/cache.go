// Package cache stores encoded filter results keyed by dataset and query, in
// process memory or in Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Cache is a byte-value store with expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired key is
	// reported with ok false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the backend.
	Close() error
}

// DefaultMaxEntries bounds the memory cache.
const DefaultMaxEntries = 1024

// New returns the cache selected by cfg.CacheBackend. An empty backend
// selects memory.
func New(cfg types.Config) (Cache, error) {
	switch cfg.CacheBackend {
	case "", types.CacheMemory:
		return NewMemory(DefaultMaxEntries, cfg.CacheTTL), nil
	case types.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedis(client, cfg.CacheTTL), nil
	case types.CacheNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrCacheUnknown, cfg.CacheBackend)
	}
}

// Key builds the cache key of a filter result. version changes whenever the
// dataset file changes.
func Key(dataset, version string, q types.Query) string {
	return fmt.Sprintf("curbmap:%s:%s:%s:%s", dataset, version, q.Day, q.Time)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error          { return nil }
func (Noop) Close() error                                       { return nil }

// expiry returns the expiry time for ttl from now, or the zero time when ttl
// is zero (never expires).
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
