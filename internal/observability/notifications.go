package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// NotificationMetrics records listener notification metrics (fan-out, delivery).
type NotificationMetrics interface {
	RecordListenersNotified(ctx context.Context, eventType string, count int64)
	RecordNotifyError(ctx context.Context, reason string)
	RecordDelivery(ctx context.Context, status string)
}

// notificationMetrics implements NotificationMetrics.
type notificationMetrics struct {
	listenersNotified metric.Int64Counter
	notifyErrors      metric.Int64Counter
	deliveries        metric.Int64Counter
}

// NewNotificationMetrics creates NotificationMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewNotificationMetrics(meter metric.Meter) (NotificationMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	listenersNotified, err := meter.Int64Counter(
		MetricNameListenersNotified,
		metric.WithDescription("Total listeners notified per event"),
	)
	if err != nil {
		return nil, fmt.Errorf("create listeners notified counter: %w", err)
	}

	notifyErrors, err := meter.Int64Counter(
		MetricNameNotifyErrors,
		metric.WithDescription("Total notification errors (listener list failures)"),
	)
	if err != nil {
		return nil, fmt.Errorf("create notify errors counter: %w", err)
	}

	deliveries, err := meter.Int64Counter(
		MetricNameEventDeliveries,
		metric.WithDescription("Total event delivery outcomes by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create event deliveries counter: %w", err)
	}

	return &notificationMetrics{
		listenersNotified: listenersNotified,
		notifyErrors:      notifyErrors,
		deliveries:        deliveries,
	}, nil
}

func (nm *notificationMetrics) RecordListenersNotified(ctx context.Context, eventType string, count int64) {
	eventType = NormalizeEventType(eventType)
	nm.listenersNotified.Add(ctx, count, metric.WithAttributes(attrEventType(eventType)))
}

func (nm *notificationMetrics) RecordNotifyError(ctx context.Context, reason string) {
	reason = NormalizeReason(reason, AllowedNotifyReasons)
	nm.notifyErrors.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrReason, reason)))
}

func (nm *notificationMetrics) RecordDelivery(ctx context.Context, status string) {
	status = NormalizeReason(status, AllowedDeliveryStatuses)
	nm.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}
