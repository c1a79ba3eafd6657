package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
	"github.com/KJithathma/tmf670-payment-method-api/internal/observability"
)

// HTTPEventSender POSTs event records to listener callbacks, best-effort:
// every delivery runs on its own goroutine, failures are logged only, and
// nothing is retried or confirmed.
type HTTPEventSender struct {
	httpClient *http.Client
	limiter    *rate.Limiter // nil when outbound rate is uncapped
	timeout    time.Duration
	metrics    observability.NotificationMetrics
}

// NewHTTPEventSender creates a sender with the given per-delivery timeout and
// outbound rate cap (deliveries per second; 0 or negative means uncapped).
// The HTTP client does not follow redirects. metrics may be nil.
func NewHTTPEventSender(timeout time.Duration, ratePerSecond float64, metrics observability.NotificationMetrics) *HTTPEventSender {
	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &HTTPEventSender{
		httpClient: client,
		limiter:    limiter,
		timeout:    timeout,
		metrics:    metrics,
	}
}

// Deliver hands the event off to a delivery goroutine and returns immediately.
func (s *HTTPEventSender) Deliver(listener *models.Listener, event *PaymentMethodEvent) {
	go s.deliver(listener, event)
}

func (s *HTTPEventSender) deliver(listener *models.Listener, event *PaymentMethodEvent) {
	// The deadline covers the rate limiter wait plus the HTTP call itself.
	ctx, cancel := context.WithTimeout(context.Background(), 2*s.timeout)
	defer cancel()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.recordDelivery(ctx, "dropped")
			slog.Warn("event delivery dropped waiting for rate limiter",
				"callback", listener.Callback, "event_id", event.EventID, "error", err)

			return
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.recordDelivery(ctx, "failed")
		slog.Error("failed to marshal event for delivery", "event_id", event.EventID, "error", err)

		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, listener.Callback, bytes.NewReader(payload))
	if err != nil {
		s.recordDelivery(ctx, "failed")
		slog.Warn("failed to build event delivery request",
			"callback", listener.Callback, "event_id", event.EventID, "error", err)

		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.recordDelivery(ctx, "failed")
		slog.Warn("event delivery failed",
			"callback", listener.Callback, "event_id", event.EventID, "error", err)

		return
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close event delivery response body",
				"callback", listener.Callback, "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.recordDelivery(ctx, "failed")
		slog.Warn("event delivery returned non-2xx status",
			"callback", listener.Callback, "event_id", event.EventID, "status", resp.StatusCode)

		return
	}

	s.recordDelivery(ctx, "success")
}

func (s *HTTPEventSender) recordDelivery(ctx context.Context, status string) {
	if s.metrics != nil {
		s.metrics.RecordDelivery(ctx, status)
	}
}

// Ensure HTTPEventSender implements EventSender.
var _ EventSender = (*HTTPEventSender)(nil)
