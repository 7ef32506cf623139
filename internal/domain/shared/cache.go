package shared

import (
	"context"
	"time"
)

// Cache stores JSON-encodable values under string keys with a TTL
type Cache interface {
	// Get decodes the value under key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
