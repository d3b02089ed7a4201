package repository

import (
	"context"
	"time"

	"rentnest-backend/internal/domain"
)

type RequestRepository interface {
	// Create inserts the request and its items in one transaction.
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	// CompareAndSwapStatus commits the transition only if the stored status
	// still equals expected. Returns false when the row changed underneath
	// the caller (lost optimistic-concurrency race).
	CompareAndSwapStatus(ctx context.Context, id int32, expected, target domain.Status, pay domain.PaymentStatus, scheduled *time.Time) (bool, error)
	ListIDsByIdentity(ctx context.Context, userID *int32, email string) ([]int32, error)
	// ListScheduledDeliveriesDue returns rent requests in Scheduled Delivery
	// whose delivery date falls on or before the given day.
	ListScheduledDeliveriesDue(ctx context.Context, by time.Time) ([]domain.Request, error)
}

type RentalRepository interface {
	// CreateForRequest inserts the rental with its items and stamps
	// materialized_rental_id on the originating request in the same
	// transaction. Returns created=false without writing anything when the
	// request is already materialized.
	CreateForRequest(ctx context.Context, rental *domain.Rental) (bool, error)
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	ListIDsByIdentity(ctx context.Context, userID *int32, email string) ([]int32, error)
}

type PaymentEventRepository interface {
	// Record claims the event id atomically. Returns inserted=false when the
	// id was already seen, which makes concurrent redeliveries of the same
	// event classify exactly one copy as first-seen.
	Record(ctx context.Context, ev *domain.PaymentEvent) (bool, error)
	MarkApplied(ctx context.Context, eventID string) error
	// Delete releases a claim whose application failed so the gateway's
	// redelivery can retry it.
	Delete(ctx context.Context, eventID string) error
	PurgeAppliedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLogEntry) error
	ListByUser(ctx context.Context, userID, limit, offset int32) ([]domain.ActivityLogEntry, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
