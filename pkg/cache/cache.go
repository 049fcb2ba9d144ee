// Package cache abstracts the short-lived JSON cache used in front of the
// admin listing queries.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serializable values with a TTL. Get reports whether the
// key was present and unmarshals into dest when it was.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
