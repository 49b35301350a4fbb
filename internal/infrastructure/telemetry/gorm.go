package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// DBTracing controls the spans recorded for SQL statements
type DBTracing struct {
	Enabled bool
	// FullSQL keeps bound variables in span statements; they may carry emails
	FullSQL bool
	// System names the database in span attributes, e.g. postgresql
	System string
}

// InstrumentDB registers the otelgorm plugin on db when tracing is enabled
func InstrumentDB(db *gorm.DB, cfg DBTracing, tp trace.TracerProvider) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithTracerProvider(tp),
		otelgorm.WithDBName(cfg.System),
	}
	if !cfg.FullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}
	return nil
}
