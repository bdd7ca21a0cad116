package cache

import (
	"context"
	"errors"
	"time"
)

// Store provides TTL-bounded key/value caching with explicit invalidation.
// Implementations must be thread-safe and support concurrent access.
// Concurrent writers to the same key race with last-writer-wins semantics.
type Store interface {
	// Get returns the value stored under key, or ok=false when the key is
	// absent or expired. A miss is not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key. A ttl of zero stores without expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

var (
	// ErrStoreClosed indicates an operation against a closed store.
	ErrStoreClosed = errors.New("cache store is closed")
)
