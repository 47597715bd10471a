// Package cache provides rendered-artifact caching for the CLI.
//
// Rendering a large map through Graphviz is the slow step of the
// pipeline, and the output is a pure function of the source document and
// the render options. The cache stores finished SVG/PNG bytes keyed by a
// hash of those inputs, so re-running a command on an unchanged document
// is instant.
//
// Three backends implement [Cache]: a file cache for normal CLI use, a
// Redis cache for shared environments, and a null cache for --no-cache.
package cache

import (
	"context"
	"time"
)

// Cache is the backend-agnostic store. Get reports a miss with a false
// second return rather than an error; errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache never stores anything. It backs --no-cache and keeps tests
// free of filesystem state.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
