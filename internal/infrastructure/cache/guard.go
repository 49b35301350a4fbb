package cache

import (
	"context"
	"fmt"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OpenCheckoutGuard returns the store that remembers recently settled cart sets.
//
// With Redis disabled the guard lives in process memory. An unreachable Redis
// degrades to memory as well, unless cfg.Required is set; a degraded guard only
// catches duplicate checkouts that land on the same instance.
func OpenCheckoutGuard(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (shared.IdempotencyStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Enabled {
		log.Info("Checkout guard kept in memory")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	switch {
	case err == nil:
		log.Info("Checkout guard backed by Redis", zap.String("addr", cfg.Addr()))
		return store, nil
	case cfg.Required:
		return nil, fmt.Errorf("checkout guard: %w", err)
	default:
		log.Warn("Redis unreachable, checkout guard degraded to memory", zap.Error(err))
		return NewInMemoryIdempotencyStore(), nil
	}
}
