// Package cache stores encoded fractal images keyed by the job that produced
// them.
//
// Rendering is deterministic, so an image can be reused whenever the pixels
// would be the same: equal view, polynomial, iteration limits and coloring.
// The CLI uses a FileCache under the user cache directory; servers sharing
// work use a RedisCache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	Close() error
}
