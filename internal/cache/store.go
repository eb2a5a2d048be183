// Package cache provides the best-effort response cache behind the read
// routes. Two stores implement the same interface: a Redis-backed one for
// deployments and an in-memory one used when Redis is skipped or
// unreachable. Callers treat every failure as a miss; the cache never
// affects correctness, only latency.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	// DeleteByPrefix removes every key under the given namespace. Deleting
	// an empty namespace is a no-op.
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}
