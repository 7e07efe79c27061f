package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CheckoutMetrics records checkout outcomes
type CheckoutMetrics struct {
	ordersPlaced     metric.Int64Counter
	checkoutFailures metric.Int64Counter
	orderValue       metric.Float64Histogram
	duration         metric.Float64Histogram
}

// NewCheckoutMetrics creates the checkout instruments on meter. A nil meter
// uses the global provider.
func NewCheckoutMetrics(meter metric.Meter) (*CheckoutMetrics, error) {
	if meter == nil {
		meter = otel.Meter(TracerName)
	}

	ordersPlaced, err := meter.Int64Counter("freshmart.orders.placed",
		metric.WithDescription("Orders committed by checkout"),
		metric.WithUnit("{order}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create orders counter: %w", err)
	}
	failures, err := meter.Int64Counter("freshmart.checkout.failures",
		metric.WithDescription("Checkouts that did not produce an order, by reason"),
		metric.WithUnit("{checkout}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}
	orderValue, err := meter.Float64Histogram("freshmart.order.value",
		metric.WithDescription("Order totals"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 100, 250, 500))
	if err != nil {
		return nil, fmt.Errorf("failed to create order value histogram: %w", err)
	}
	duration, err := meter.Float64Histogram("freshmart.checkout.duration",
		metric.WithDescription("Checkout latency including retries"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &CheckoutMetrics{
		ordersPlaced:     ordersPlaced,
		checkoutFailures: failures,
		orderValue:       orderValue,
		duration:         duration,
	}, nil
}

// OrderPlaced records a committed order
func (m *CheckoutMetrics) OrderPlaced(ctx context.Context, itemCount int, total decimal.Decimal, elapsed time.Duration) {
	m.ordersPlaced.Add(ctx, 1)
	m.orderValue.Record(ctx, total.InexactFloat64(),
		metric.WithAttributes(attribute.Int("item_count", itemCount)))
	m.duration.Record(ctx, float64(elapsed.Milliseconds()),
		metric.WithAttributes(attribute.String("outcome", "placed")))
}

// CheckoutFailed records a checkout that ended without an order. reason is
// the error code, e.g. INSUFFICIENT_STOCK.
func (m *CheckoutMetrics) CheckoutFailed(ctx context.Context, reason string, elapsed time.Duration) {
	m.checkoutFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	m.duration.Record(ctx, float64(elapsed.Milliseconds()),
		metric.WithAttributes(attribute.String("outcome", "failed")))
}
