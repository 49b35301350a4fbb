package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

var (
	attrMode    = attribute.Key("mode")
	attrSource  = attribute.Key("source")
	attrOutcome = attribute.Key("outcome")
)

// SettlementMetrics counts checkout outcomes
type SettlementMetrics struct {
	settled    metric.Int64Counter
	partial    metric.Int64Counter
	duplicates metric.Int64Counter
	cleanups   metric.Int64Counter
}

// NewSettlementMetrics registers the settlement counters on meter
func NewSettlementMetrics(meter metric.Meter) (*SettlementMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &SettlementMetrics{}
	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
		unit   string
	}{
		{&m.settled, "bistro_payments_settled_total", "Checkouts that recorded a payment and cleared the cart", "{payments}"},
		{&m.partial, "bistro_settlement_partial_total", "Checkouts whose payment stands but whose cart lines were not removed", "{payments}"},
		{&m.duplicates, "bistro_checkout_duplicate_total", "Checkouts refused because the same cart set was already being settled", "{requests}"},
		{&m.cleanups, "bistro_cart_cleanup_total", "Cart cleanup attempts for recorded payments", "{attempts}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", c.name, err)
		}
		*c.target = counter
	}
	return m, nil
}

func (m *SettlementMetrics) Settled(ctx context.Context, atomic bool) {
	mode := "two_step"
	if atomic {
		mode = "atomic"
	}
	m.settled.Add(ctx, 1, metric.WithAttributes(attrMode.String(mode)))
}

func (m *SettlementMetrics) PartialSettlement(ctx context.Context) {
	m.partial.Add(ctx, 1)
}

func (m *SettlementMetrics) DuplicateCheckout(ctx context.Context) {
	m.duplicates.Add(ctx, 1)
}

// CartCleanup counts one cleanup attempt; source is request or reconciler
func (m *SettlementMetrics) CartCleanup(ctx context.Context, source string, ok bool) {
	outcome := "failed"
	if ok {
		outcome = "ok"
	}
	m.cleanups.Add(ctx, 1, metric.WithAttributes(attrSource.String(source), attrOutcome.String(outcome)))
}
