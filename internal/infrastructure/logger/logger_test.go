package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("defaults when config is nil", func(t *testing.T) {
		l, err := New(nil, "development")
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bistro.log")
		l, err := New(&Config{Level: "debug", Format: "json", Output: path}, "development")
		require.NoError(t, err)

		l.Info("hello")
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
		assert.Contains(t, string(data), `"env":"development"`)
	})

	t.Run("unwritable output fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "bistro.log")
		_, err := New(&Config{Output: path}, "development")
		assert.Error(t, err)
	})

	t.Run("does not mutate caller config", func(t *testing.T) {
		cfg := &Config{Level: "info", Format: "console", Output: "stderr"}
		_, err := New(cfg, "production")
		require.NoError(t, err)
		assert.Equal(t, "console", cfg.Format)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestContextLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx = WithUserEmail(ctx, "guest@bistro.example")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "guest@bistro.example", GetUserEmail(ctx))

	FromContext(ctx).Info("settled")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "guest@bistro.example", fields["user_email"])
}

func TestFromContext_NoLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestFromContextOr(t *testing.T) {
	fallback := zap.NewExample()
	assert.Same(t, fallback, FromContextOr(context.Background(), fallback))

	attached := zap.NewNop()
	ctx := WithContext(context.Background(), attached)
	assert.Same(t, attached, FromContextOr(ctx, fallback))
}
