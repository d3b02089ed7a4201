package domain

import "time"

type RequestKind string

const (
	RequestKindProperty      RequestKind = "PROPERTY"
	RequestKindFurnitureSell RequestKind = "FURNITURE_SELL"
	RequestKindFurnitureRent RequestKind = "FURNITURE_RENT"
	RequestKindService       RequestKind = "SERVICE"
)

// Rentable reports whether a delivered request of this kind produces a Rental.
func (k RequestKind) Rentable() bool {
	return k == RequestKindFurnitureRent
}

func (k RequestKind) Valid() bool {
	switch k {
	case RequestKindProperty, RequestKindFurnitureSell, RequestKindFurnitureRent, RequestKindService:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusRefunded:
		return true
	}
	return false
}

type Request struct {
	ID                    int32         `json:"id"`
	Kind                  RequestKind   `json:"kind"`
	Status                Status        `json:"status"`
	PaymentStatus         PaymentStatus `json:"payment_status"`
	UserID                *int32        `json:"user_id,omitempty"` // nil for guest submissions
	Email                 string        `json:"email"`
	Phone                 string        `json:"phone"`
	Items                 []RequestItem `json:"items,omitempty"`
	DeliveryChargeCents   int32         `json:"delivery_charge_cents"`
	ExpectedTotalCents    int32         `json:"expected_total_cents"`
	ScheduledDeliveryDate *time.Time    `json:"scheduled_delivery_date,omitempty"`
	MaterializedRentalID  *int32        `json:"materialized_rental_id,omitempty"`
	CreatedOn             time.Time     `json:"created_on"`
	UpdatedOn             time.Time     `json:"updated_on"`
}

// Identity returns the submission's owning identity.
func (r *Request) Identity() Identity {
	return Identity{UserID: r.UserID, Email: r.Email}
}

type RequestItem struct {
	ID                int32  `json:"id"`
	RequestID         int32  `json:"request_id"`
	Name              string `json:"name"`
	Quantity          int32  `json:"quantity"`
	MonthlyPriceCents int32  `json:"monthly_price_cents"`
	DepositCents      int32  `json:"deposit_cents"`
}
