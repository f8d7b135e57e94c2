// Package store persists submission records in a key-value store.
// The engine itself is opaque to the rest of the service: records go in
// with Put and come back out with Get.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Store is the put/get contract of the key-value store.
type Store interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// Pinger is implemented by stores that can report their liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend names accepted by Open.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Namespace     string
	RedisAddrs    []string
	RedisPassword string
	RedisCluster  bool
	DatabaseURL   string
}

// Open connects to the configured backend. The returned close function
// releases the underlying connections and is never nil.
func Open(ctx context.Context, opts Options) (Store, func(), error) {
	switch strings.ToLower(opts.Backend) {
	case BackendRedis:
		client := NewRedisClient(opts.RedisAddrs, opts.RedisPassword, opts.RedisCluster)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, func() {}, fmt.Errorf("store: redis ping: %w", err)
		}
		return NewRedisStore(client, opts.Namespace), func() { _ = client.Close() }, nil
	case BackendPostgres:
		pool, err := NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("store: postgres connect: %w", err)
		}
		return NewPgStore(pool, opts.Namespace), pool.Close, nil
	case BackendMemory:
		return NewMemoryStore(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
