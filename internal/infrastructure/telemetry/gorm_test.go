package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type dish struct {
	ID   uint
	Name string
}

func openTracedDB(t *testing.T, cfg DBTracing) *tracetest.SpanRecorder {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&dish{}))

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, InstrumentDB(db, cfg, tp))

	require.NoError(t, db.Create(&dish{Name: "Ramen"}).Error)
	var got []dish
	require.NoError(t, db.Where("name = ?", "Ramen").Find(&got).Error)
	require.Len(t, got, 1)
	return recorder
}

func TestInstrumentDB(t *testing.T) {
	t.Run("records a span per statement", func(t *testing.T) {
		recorder := openTracedDB(t, DBTracing{Enabled: true, System: "sqlite"})
		assert.GreaterOrEqual(t, len(recorder.Ended()), 2)
	})

	t.Run("hides bound values by default", func(t *testing.T) {
		recorder := openTracedDB(t, DBTracing{Enabled: true, System: "sqlite"})
		for _, span := range recorder.Ended() {
			for _, kv := range span.Attributes() {
				assert.NotContains(t, kv.Value.Emit(), "Ramen", string(kv.Key))
			}
		}
	})

	t.Run("disabled registers nothing", func(t *testing.T) {
		recorder := openTracedDB(t, DBTracing{Enabled: false})
		assert.Empty(t, recorder.Ended())
	})
}
