package ledger

import "time"

// Event type discriminators for ledger records.
const (
	EventCustomerEntry  = "customer_entry"
	EventNavigation     = "navigation"
	EventPaymentSuccess = "payment_success"
	EventOrderComplete  = "order_complete"
)

// Record is a flat key/value event appended to the external sheet.
// It is advisory only; the draft store stays authoritative.
type Record map[string]any

// EventType returns the record's event_type discriminator, if set.
func (r Record) EventType() string {
	et, _ := r["event_type"].(string)
	return et
}

// Stamp sets event_type and an ISO-8601 timestamp on the record.
func Stamp(r Record, eventType string, at time.Time) Record {
	r["event_type"] = eventType
	r["timestamp"] = at.UTC().Format(time.RFC3339)
	return r
}
