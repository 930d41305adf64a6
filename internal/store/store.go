// Package store provides the cache key-value abstraction used for translation
// lookup caching and invalidation, with in-memory and Redis backends.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("store: key not found")

// Store is the unified cache interface. Translation use cases write resolved
// values through it and invalidate entries after every mutation, either by
// exact key or by a glob pattern ("*" matches any run of characters).
type Store interface {
	// Set stores a key-value pair with an optional TTL (0 means no expiry).
	Set(key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by its key. Returns ErrNotFound if missing.
	Get(key string) ([]byte, error)

	// Delete removes a single key.
	Delete(key string) error

	// Del removes multiple keys.
	Del(keys ...string) error

	// DelPattern removes all keys matching a glob pattern and returns the
	// number of keys removed.
	DelPattern(pattern string) (int64, error)

	// Exists checks whether a key exists.
	Exists(key string) (bool, error)

	// Clear removes all keys.
	Clear() error

	// Close releases any resources held by the store.
	Close() error
}
