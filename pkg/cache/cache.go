// Package cache provides the response store used by registry clients.
//
// Entries are keyed by the exact request URL and hold the raw response body.
// The only implementation is [MemoryCache]: entries never expire and live as
// long as the cache value itself.
package cache

import "context"

// Cache stores raw response bodies by key.
type Cache interface {
	// Get returns the stored data and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous entry.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Len reports the number of stored entries.
	Len() int

	// Close releases resources held by the cache.
	Close() error
}
