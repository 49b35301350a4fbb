package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/bistro/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, r.Body().AsString())
	}
	return out
}

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	p, err := Setup(ctx, config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.TracerProvider())
	assert.NotNil(t, p.Meter("bistro"))

	log := zap.NewNop()
	assert.Same(t, log, p.BridgeLogger(log))
	assert.NoError(t, p.Shutdown(ctx))
}

func TestBridgeLogger(t *testing.T) {
	exporter := &memoryLogExporter{}
	p := &Providers{
		cfg:  config.TelemetryConfig{ServiceName: "bistro-test"},
		logs: sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter))),
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	core, local := observer.New(zapcore.InfoLevel)
	log := p.BridgeLogger(zap.New(core))

	log.Debug("cache lookup")
	log.Info("Payment settled", zap.String("payment_id", "p-1"))
	log.Warn("Checkout guard unavailable")

	assert.Equal(t, 2, local.Len())
	assert.Equal(t, []string{"Payment settled", "Checkout guard unavailable"}, exporter.bodies())
}
