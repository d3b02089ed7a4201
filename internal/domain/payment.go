package domain

import "time"

// PaymentEvent is an externally-signed gateway notification. EventID is the
// idempotency key: each distinct id is applied at most once.
type PaymentEvent struct {
	EventID     string    `json:"event_id"`
	RequestID   int32     `json:"request_id"`
	AmountCents int32     `json:"amount_cents"`
	Signature   string    `json:"signature"`
	ReceivedAt  time.Time `json:"received_at"`
	Applied     bool      `json:"applied"`
}
