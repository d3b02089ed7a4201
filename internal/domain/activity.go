package domain

import "time"

// ActivityLogEntry is an append-only audit record, written only for
// authenticated identities.
type ActivityLogEntry struct {
	ID        int32             `json:"id"`
	UserID    int32             `json:"user_id"`
	Action    string            `json:"action"`
	Details   map[string]string `json:"details"`
	CreatedOn time.Time         `json:"created_on"`
}

const (
	ActivityRequestCreated = "REQUEST_CREATED"
	ActivityPaymentApplied = "PAYMENT_APPLIED"
)
