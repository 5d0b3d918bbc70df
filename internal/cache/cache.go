// Package cache contains an interface of byte-oriented response cache.
package cache

import (
	"context"
	"time"
)

// Storage keeps raw payloads by key for limited time.
// Implementations treat backend failures as cache misses.
type Storage interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, content []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	// DeletePrefix removes every item which key starts with one of prefixes.
	DeletePrefix(ctx context.Context, prefixes ...string)
}
