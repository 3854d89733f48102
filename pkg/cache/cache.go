// Package cache memoizes finished executions.
//
// Algorithm runs are deterministic, so an execution can be stored under a key
// derived from its inputs and served again without rerunning the algorithm.
// Entries carry a TTL and are addressed by content only; the cache is not a
// store of user traces.
//
// Backends:
//
//   - [NullCache] disables caching.
//   - [FileCache] keeps entries as files for the CLI.
//   - [RedisCache] shares entries between server replicas.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// DefaultTTL is how long executions stay cached when no TTL is configured.
const DefaultTTL = 24 * time.Hour
