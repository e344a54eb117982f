package providers

import (
	"context"
)

// CacheProvider is the byte-level cache used by the cached assignment
// repository and the HTTP response cache. A miss is reported as an error
// from Get; callers fall through to the underlying store.
type CacheProvider interface {
	// Get retrieves a cached value
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL in seconds
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete invalidates a key
	Delete(ctx context.Context, key string) error
}
