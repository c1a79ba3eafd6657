package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
	"github.com/KJithathma/tmf670-payment-method-api/internal/observability"
)

// PaymentMethodEvent is the TMF event record constructed once per listener per
// mutation. Events are ephemeral; they are recorded (logged) and optionally
// delivered, never persisted.
type PaymentMethodEvent struct {
	EventID   string                    `json:"eventId"`
	EventTime string                    `json:"eventTime"`
	EventType string                    `json:"eventType"`
	Event     PaymentMethodEventPayload `json:"event"`
}

// PaymentMethodEventPayload nests the full post-mutation entity.
type PaymentMethodEventPayload struct {
	PaymentMethod *models.PaymentMethod `json:"paymentMethod"`
}

// EventSender delivers one event record to a listener callback.
// Implementations must be best-effort: never block the caller for the
// duration of the delivery and never propagate failures.
type EventSender interface {
	Deliver(listener *models.Listener, event *PaymentMethodEvent)
}

// ListenerNotifier implements eventProvider by emitting one event record per
// registered listener, in store order, with no deduplication and no filtering
// by the listener's query.
type ListenerNotifier struct {
	repo    ListenersRepository
	sender  EventSender // nil when outbound delivery is disabled
	metrics observability.NotificationMetrics
}

// NewListenerNotifier creates a notifier over the listener store.
// sender and metrics may be nil.
func NewListenerNotifier(repo ListenersRepository, sender EventSender, metrics observability.NotificationMetrics) *ListenerNotifier {
	return &ListenerNotifier{
		repo:    repo,
		sender:  sender,
		metrics: metrics,
	}
}

// PublishEvent loads the full current listener set and emits one freshly
// identified event record per listener. Failures are logged and never surface
// to the mutation that triggered the event.
func (n *ListenerNotifier) PublishEvent(ctx context.Context, event Event) {
	listeners, err := n.repo.List(ctx)
	if err != nil {
		if n.metrics != nil {
			n.metrics.RecordNotifyError(ctx, "list_failed")
		}

		slog.Error("failed to load listeners for notification",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err,
		)

		return
	}

	for i := range listeners {
		listener := &listeners[i]

		record := &PaymentMethodEvent{
			EventID:   uuid.Must(uuid.NewV7()).String(),
			EventTime: time.Now().UTC().Format(time.RFC3339),
			EventType: event.Type.String(),
			Event:     PaymentMethodEventPayload{PaymentMethod: event.PaymentMethod},
		}

		payload, err := json.Marshal(record)
		if err != nil {
			slog.Error("failed to marshal event record", "event_id", record.EventID, "error", err)

			continue
		}

		slog.Info("Notifying listener",
			"callback", listener.Callback,
			"event_id", record.EventID,
			"event_type", record.EventType,
			"payload", string(payload),
		)

		if n.sender != nil {
			n.sender.Deliver(listener, record)
		}
	}

	if n.metrics != nil {
		n.metrics.RecordListenersNotified(ctx, event.Type.String(), int64(len(listeners)))
	}
}

// Ensure ListenerNotifier implements eventProvider.
var _ eventProvider = (*ListenerNotifier)(nil)
