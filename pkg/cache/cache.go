// Package cache stores rendered artifacts keyed by the content they were
// rendered from.
//
// Rendering a network diagram through Graphviz is the only expensive step in
// nestgraph, and its output depends solely on the db serialization of the
// network and the render options. Keys are therefore derived from a SHA-256
// hash of that serialization ([Hash]) combined with the options ([Keyer]).
//
// Two implementations exist: [FileCache] for the CLI, rooted in the user's
// cache directory, and [NullCache] for when caching is disabled.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached artifact kinds.
const (
	// TTLArtifact applies to rendered diagrams. Content addressing makes them
	// valid forever; the TTL only bounds disk usage.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired or
	// corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NullCache stores nothing; every Get misses. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
