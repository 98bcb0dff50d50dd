package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names
const (
	MetricOrdersCreated   = "bayup_orders_created_total"
	MetricOrderRevenue    = "bayup_order_revenue_total"
	MetricPaymentWebhooks = "bayup_payment_webhooks_total"
)

// StoreMetrics records the business counters of the storefronts
type StoreMetrics struct {
	ordersCreated   metric.Int64Counter
	orderRevenue    metric.Float64Counter
	paymentWebhooks metric.Int64Counter
}

// NewStoreMetrics registers the counters on meter
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	m := &StoreMetrics{}
	var err error
	if m.ordersCreated, err = meter.Int64Counter(MetricOrdersCreated,
		metric.WithDescription("Orders created, by source"),
		metric.WithUnit("{order}")); err != nil {
		return nil, fmt.Errorf("register %s: %w", MetricOrdersCreated, err)
	}
	if m.orderRevenue, err = meter.Float64Counter(MetricOrderRevenue,
		metric.WithDescription("Sum of order totals, by source")); err != nil {
		return nil, fmt.Errorf("register %s: %w", MetricOrderRevenue, err)
	}
	if m.paymentWebhooks, err = meter.Int64Counter(MetricPaymentWebhooks,
		metric.WithDescription("Payment gateway webhooks, by reported status"),
		metric.WithUnit("{event}")); err != nil {
		return nil, fmt.Errorf("register %s: %w", MetricPaymentWebhooks, err)
	}
	return m, nil
}

// RecordOrderCreated counts a created order and adds its total to revenue
func (m *StoreMetrics) RecordOrderCreated(ctx context.Context, tenantID uuid.UUID, source string, total decimal.Decimal) {
	attrs := metric.WithAttributes(
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("source", source),
	)
	m.ordersCreated.Add(ctx, 1, attrs)
	m.orderRevenue.Add(ctx, total.InexactFloat64(), attrs)
}

// RecordPaymentWebhook counts a processed gateway webhook
func (m *StoreMetrics) RecordPaymentWebhook(ctx context.Context, gateway, status string) {
	m.paymentWebhooks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("gateway", gateway),
		attribute.String("status", status),
	))
}
