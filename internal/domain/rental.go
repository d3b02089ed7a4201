package domain

import "time"

// Rental is the aggregate materialized exactly once when a rentable request
// is delivered. After creation it is owned by the rental-servicing lifecycle
// and never mutated by the order core.
type Rental struct {
	ID                  int32        `json:"id"`
	RequestID           int32        `json:"request_id"`
	UserID              *int32       `json:"user_id,omitempty"`
	Email               string       `json:"email"`
	Items               []RentalItem `json:"items"`
	TotalMonthlyCents   int32        `json:"total_monthly_cents"`
	TotalDepositCents   int32        `json:"total_deposit_cents"`
	DeliveryChargeCents int32        `json:"delivery_charge_cents"`
	TotalAmountCents    int32        `json:"total_amount_cents"`
	CreatedOn           time.Time    `json:"created_on"`
}

type RentalItem struct {
	ID                int32  `json:"id"`
	RentalID          int32  `json:"rental_id"`
	Name              string `json:"name"`
	Quantity          int32  `json:"quantity"`
	MonthlyPriceCents int32  `json:"monthly_price_cents"`
	DepositCents      int32  `json:"deposit_cents"`
}
