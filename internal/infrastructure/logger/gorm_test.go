package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	sql := func() (string, int64) { return "DELETE FROM cart_items WHERE id IN (?)", 2 }

	t.Run("failed statement carries request fields", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn)

		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
		ctx = WithUserEmail(ctx, "guest@bistro.example")
		gl.Trace(ctx, time.Now(), sql, errors.New("connection reset"))

		logs := recorded.FilterMessage("statement failed").All()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "guest@bistro.example", fields["user_email"])
		assert.Equal(t, "DELETE", fields["op"])
		assert.EqualValues(t, 2, fields["rows"])
	})

	t.Run("record not found is not logged", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn)

		gl.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("slow statement", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
		logs := recorded.FilterMessage("slow statement").All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("disabled slow threshold", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(-1))

		gl.Trace(context.Background(), time.Now().Add(-time.Hour), sql, nil)
		assert.Empty(t, recorded.All())
	})

	t.Run("fast statements only at info", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn)
		called := false
		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			called = true
			return "SELECT 1", 1
		}, nil)
		assert.Empty(t, recorded.All())
		assert.False(t, called)

		gl.LogMode(gormlogger.Info).Trace(context.Background(), time.Now(), sql, nil)
		require.Len(t, recorded.FilterMessage("statement").All(), 1)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn).LogMode(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
		assert.Empty(t, recorded.All())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("INFO"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("whatever"))
}
