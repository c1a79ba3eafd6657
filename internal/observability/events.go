package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventMetrics records event-pipeline metrics (publisher channel, fan-out).
// Methods accept ctx for future exemplar support (linking metric samples to trace IDs).
type EventMetrics interface {
	RecordEventDiscarded(ctx context.Context, eventType string)
	RecordFanOutDuration(ctx context.Context, duration time.Duration, eventType string)
}

// eventMetrics implements EventMetrics.
type eventMetrics struct {
	eventsDiscarded metric.Int64Counter
	fanOutDuration  metric.Float64Histogram
}

// NewEventMetrics creates EventMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewEventMetrics(meter metric.Meter) (EventMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	eventsDiscarded, err := meter.Int64Counter(
		MetricNameEventsDiscarded,
		metric.WithDescription("Total number of events discarded (channel full)"),
	)
	if err != nil {
		return nil, fmt.Errorf("create events discarded counter: %w", err)
	}

	fanOutDuration, err := meter.Float64Histogram(
		MetricNameFanOutDuration,
		metric.WithDescription("Time to process one event across all providers (seconds)"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create fan-out duration histogram: %w", err)
	}

	return &eventMetrics{
		eventsDiscarded: eventsDiscarded,
		fanOutDuration:  fanOutDuration,
	}, nil
}

func attrEventType(v string) attribute.KeyValue {
	return attribute.String(AttrEventType, v)
}

func (e *eventMetrics) RecordEventDiscarded(ctx context.Context, eventType string) {
	eventType = NormalizeEventType(eventType)
	e.eventsDiscarded.Add(ctx, 1, metric.WithAttributes(attrEventType(eventType)))
}

func (e *eventMetrics) RecordFanOutDuration(ctx context.Context, duration time.Duration, eventType string) {
	eventType = NormalizeEventType(eventType)
	e.fanOutDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrEventType(eventType)))
}
