package observability

import (
	"github.com/KJithathma/tmf670-payment-method-api/internal/datatypes"
)

// Metric names (OpenTelemetry).
const (
	MetricNameEventsDiscarded   = "tmf670_events_discarded_total"
	MetricNameFanOutDuration    = "tmf670_event_fan_out_duration_seconds"
	MetricNameListenersNotified = "tmf670_listeners_notified_total"
	MetricNameNotifyErrors      = "tmf670_notify_errors_total"
	MetricNameEventDeliveries   = "tmf670_event_deliveries_total"

	MetricNameHTTPRequests        = "tmf670_http_requests_total"
	MetricNameHTTPRequestDuration = "tmf670_http_request_duration_seconds"
	MetricNameRequestBodyTooLarge = "tmf670_request_body_too_large_total"
)

// Attribute keys.
const (
	AttrEventType   = "event_type"
	AttrReason      = "reason"
	AttrStatus      = "status"
	AttrMethod      = "method"
	AttrRoute       = "route"
	AttrStatusClass = "status_class"
)

// AllowedNotifyReasons for tmf670_notify_errors_total.
var AllowedNotifyReasons = map[string]bool{
	"list_failed": true,
}

// AllowedDeliveryStatuses for tmf670_event_deliveries_total.
var AllowedDeliveryStatuses = map[string]bool{
	"success": true,
	"failed":  true,
	"dropped": true,
}

// NormalizeEventType returns eventType if allowed, otherwise "unknown"
// (bounded metric cardinality).
func NormalizeEventType(eventType string) string {
	if datatypes.IsValidEventType(eventType) {
		return eventType
	}

	return "unknown"
}

// NormalizeReason returns reason if in allowed, otherwise "other".
func NormalizeReason(reason string, allowed map[string]bool) string {
	if allowed[reason] {
		return reason
	}

	return "other"
}
