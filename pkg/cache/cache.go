// Package cache provides byte-level caching for decoded instances.
//
// The CLI caches the JSON encoding of decoded PSPLIB files keyed by a hash
// of the source bytes, so repeated operations on the same file skip the
// decode. Two backends are provided: [FileCache] for local single-user
// usage and [RedisCache] for shared deployments, plus a no-op [NullCache]
// for disabling caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-level key-value store with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores the entry without
	// expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
