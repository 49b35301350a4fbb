package cache

import (
	"context"
	"testing"

	"github.com/bistro/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenCheckoutGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("redis disabled keeps the guard in memory", func(t *testing.T) {
		store, err := OpenCheckoutGuard(ctx, config.RedisConfig{}, nil)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis degrades with a warning", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		store, err := OpenCheckoutGuard(ctx, unreachable, zap.New(core))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
		assert.Len(t, recorded.FilterMessage("Redis unreachable, checkout guard degraded to memory").All(), 1)
	})

	t.Run("required redis must be reachable", func(t *testing.T) {
		required := unreachable
		required.Required = true
		_, err := OpenCheckoutGuard(ctx, required, nil)
		assert.ErrorContains(t, err, "checkout guard")
	})
}
