// Package cache provides a small byte cache used to memoize rendered graph
// artifacts (DOT, SVG, PNG) keyed by the hash of the serialized graph.
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache] for
// shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the interface for cache backends. Implementations must treat a
// missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey builds the cache key for a rendered artifact: the hash of the
// serialized graph plus the output format, so the same graph rendered to
// several formats occupies distinct entries.
func ArtifactKey(graphHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", graphHash, format)
}
