// Package cache de-duplicates upstream directory and geocoding lookups.
// Requests are keyed by their full input parameters: concurrent identical
// lookups collapse into one flight, and recent responses are served from an
// optional Redis store instead of the network.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Store is the minimal byte cache the Loader needs. Writes are
// fire-and-forget; a failing store only costs extra upstream calls.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Noop satisfies Store without retaining anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte, time.Duration) {}

// Redis stores entries in a Redis instance with per-key TTLs.
type Redis struct {
	client *redis.Client
}

// NewRedis connects a Redis-backed store.
func NewRedis(addr, password string, db int) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get fetches a cached value; a miss or any Redis error reads as absent.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get failed key=%s err=%v", key, err)
		}
		return nil, false
	}
	return value, true
}

// Set writes a value with the given TTL, logging failures instead of
// surfacing them.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("cache set failed key=%s err=%v", key, err)
	}
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Loader fronts a fetch function with the store plus in-flight collapsing.
type Loader struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// NewLoader builds a loader. A nil store disables caching but keeps the
// singleflight collapsing.
func NewLoader(store Store, ttl time.Duration) *Loader {
	if store == nil {
		store = Noop{}
	}
	return &Loader{store: store, ttl: ttl}
}

// Do returns the cached value for key or runs fetch exactly once per key
// across concurrent callers, caching a successful result.
func (l *Loader) Do(ctx context.Context, key string, fetch func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if value, ok := l.store.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := l.group.Do(key, func() (any, error) {
		if value, ok := l.store.Get(ctx, key); ok {
			return value, nil
		}
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		l.store.Set(ctx, key, fetched, l.ttl)
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}
