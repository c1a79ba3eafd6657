package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KJithathma/tmf670-payment-method-api/internal/datatypes"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
	"github.com/KJithathma/tmf670-payment-method-api/internal/observability"
)

// fanOutTimeout bounds one event's fan-out so a stuck listener-store call
// doesn't freeze the worker forever.
const fanOutTimeout = 10 * time.Second

// Event represents a committed PaymentMethod mutation flowing to providers.
type Event struct {
	ID            uuid.UUID           // Unique event id (UUID v7, time-ordered)
	Type          datatypes.EventType // Create, AttributeValueChange, Delete
	Timestamp     time.Time           // Mutation time
	PaymentMethod *models.PaymentMethod
}

// EventPublisher defines the interface services use to announce mutations.
// Publishing is fire-and-forget: it never blocks and never fails the caller.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType datatypes.EventType, pm *models.PaymentMethod)
}

// eventProvider is the internal interface for providers that receive a full Event.
type eventProvider interface {
	PublishEvent(ctx context.Context, event Event)
}

// EventPublisherManager coordinates event providers behind a buffered channel.
// Mutations publish without blocking; a dedicated worker fans each event out.
type EventPublisherManager struct {
	eventChan chan Event
	providers []eventProvider
	metrics   observability.EventMetrics
	wg        sync.WaitGroup
}

// NewEventPublisherManager creates a manager with the given channel buffer.
// metrics may be nil when metrics are disabled.
func NewEventPublisherManager(bufferSize int, metrics observability.EventMetrics) *EventPublisherManager {
	m := &EventPublisherManager{
		eventChan: make(chan Event, bufferSize),
		providers: make([]eventProvider, 0),
		metrics:   metrics,
	}

	m.wg.Add(1)
	go m.startWorker()

	return m
}

// RegisterProvider registers an event provider.
// Must only be called during startup, before any events are published.
func (m *EventPublisherManager) RegisterProvider(provider eventProvider) {
	m.providers = append(m.providers, provider)
}

// PublishEvent enqueues an event for fan-out. When the buffer is full the
// event is dropped and logged (loss is acceptable; delivery is best-effort).
func (m *EventPublisherManager) PublishEvent(ctx context.Context, eventType datatypes.EventType, pm *models.PaymentMethod) {
	event := Event{
		ID:            uuid.Must(uuid.NewV7()),
		Type:          eventType,
		Timestamp:     time.Now().UTC(),
		PaymentMethod: pm,
	}

	select {
	case m.eventChan <- event:
		slog.Debug("Event published to channel", "event_id", event.ID, "event_type", event.Type)
	default:
		if m.metrics != nil {
			m.metrics.RecordEventDiscarded(ctx, event.Type.String())
		}

		slog.Warn("Event channel full, event dropped", "event_id", event.ID, "event_type", event.Type)
	}
}

// startWorker runs in a dedicated goroutine, reading events from the channel
// and fanning out each event to all registered providers. The loop exits when
// the channel is closed by Shutdown.
func (m *EventPublisherManager) startWorker() {
	defer m.wg.Done()

	bgCtx := context.Background()

	for event := range m.eventChan {
		start := time.Now()

		ctx, cancel := context.WithTimeout(bgCtx, fanOutTimeout)

		for _, provider := range m.providers {
			provider.PublishEvent(ctx, event)
		}
		cancel()

		if m.metrics != nil {
			m.metrics.RecordFanOutDuration(bgCtx, time.Since(start), event.Type.String())
		}
	}
}

// Shutdown stops the background worker and waits for the buffer to drain.
func (m *EventPublisherManager) Shutdown() {
	close(m.eventChan)
	m.wg.Wait()
}
