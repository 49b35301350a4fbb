package shared

import (
	"context"
	"time"
)

// IdempotencyStore records keys of operations that are in flight or already done,
// so a repeated request with the same key can be recognised and refused
type IdempotencyStore interface {
	// MarkProcessed marks a key as taken with a TTL
	// Returns true if the key was newly marked, false if it was already taken
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key so the operation can be attempted again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key stays taken
	// Default: 10 minutes
	TTL time.Duration
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL: 10 * time.Minute,
	}
}
