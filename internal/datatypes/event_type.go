// Package datatypes defines shared types for events (e.g. notification event types).
package datatypes

// EventType represents a PaymentMethod notification event type as an enum.
// Use String() to get the TMF event type string for the wire.
type EventType uint16

// Event type constants; string form is given in eventTypeMap.
const (
	PaymentMethodCreate EventType = iota
	PaymentMethodAttributeValueChange
	PaymentMethodDelete
)

// eventTypeMap maps TMF event type strings to EventType enums.
// This is the single source of truth for valid event type strings.
var eventTypeMap = map[string]EventType{
	"PaymentMethodCreateEvent":               PaymentMethodCreate,
	"PaymentMethodAttributeValueChangeEvent": PaymentMethodAttributeValueChange,
	"PaymentMethodDeleteEvent":               PaymentMethodDelete,
}

// reverseEventTypeMap maps EventType enums to string representations.
// Built at init time from eventTypeMap for O(1) lookups.
var reverseEventTypeMap map[EventType]string

func init() {
	reverseEventTypeMap = make(map[EventType]string, len(eventTypeMap))
	for str, eventType := range eventTypeMap {
		reverseEventTypeMap[eventType] = str
	}
}

// String returns the TMF event type string for an EventType.
// Implements fmt.Stringer. Returns empty string for invalid event types.
func (et EventType) String() string {
	str, ok := reverseEventTypeMap[et]
	if !ok {
		return ""
	}

	return str
}

// ParseEventType converts a string to an EventType enum.
// Returns the EventType and true if valid, or 0 and false if invalid.
func ParseEventType(s string) (EventType, bool) {
	et, ok := eventTypeMap[s]

	return et, ok
}

// IsValidEventType checks if an event type string is valid.
func IsValidEventType(eventType string) bool {
	_, ok := eventTypeMap[eventType]

	return ok
}

// GetAllEventTypes returns all valid event type strings (for validation).
// The order is not guaranteed (map iteration order).
func GetAllEventTypes() []string {
	types := make([]string, 0, len(eventTypeMap))
	for k := range eventTypeMap {
		types = append(types, k)
	}

	return types
}
