package service

import (
	"context"
	"time"

	"rentnest-backend/internal/domain"
)

// TransitionInput carries the optional fields of a status update. A zero
// PaymentStatus leaves the stored payment status unchanged.
type TransitionInput struct {
	PaymentStatus         domain.PaymentStatus
	ScheduledDeliveryDate *time.Time
}

type StatusService interface {
	// Transition moves the request to the target status, enforcing the
	// kind's transition graph. Re-applying the current status is a no-op
	// success. Marking a pre-confirmed request Paid advances it to the
	// confirmed stage within the same update.
	Transition(ctx context.Context, requestID int32, target domain.Status, in TransitionInput) (*domain.Request, error)
	// MarkPaid applies a payment to whatever status the request currently
	// holds: a same-status transition whose only visible effect is the
	// Paid auto-advance. Safe to call repeatedly.
	MarkPaid(ctx context.Context, requestID int32) (*domain.Request, error)
}

type PaymentService interface {
	// ApplyEvent verifies and idempotently applies a gateway payment event.
	// applied=false means the event was a duplicate or was discarded.
	ApplyEvent(ctx context.Context, ev *domain.PaymentEvent) (bool, error)
}

type FulfillmentService interface {
	// Materialize synthesizes the Rental for a delivered rentable request.
	// Returns ErrMaterializationConflict when the request already has one.
	Materialize(ctx context.Context, req *domain.Request) (*domain.Rental, error)
	GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
}

// NewRequestInput is the validated submission payload handed over by the
// listing/browsing surface.
type NewRequestInput struct {
	Kind                domain.RequestKind
	UserID              *int32
	Email               string
	Phone               string
	Items               []domain.RequestItem
	DeliveryChargeCents int32
}

type IntakeService interface {
	CreateRequest(ctx context.Context, in NewRequestInput) (*domain.Request, error)
	GetRequest(ctx context.Context, requestID int32) (*domain.Request, error)
}

// AccountService exposes the per-user read surfaces: in-app notifications
// and the audit trail. Both exist only for authenticated identities.
type AccountService interface {
	Notifications(ctx context.Context, userID, limit, offset int32) ([]domain.Notification, int32, error)
	MarkNotificationRead(ctx context.Context, id, userID int32) error
	Activity(ctx context.Context, userID, limit, offset int32) ([]domain.ActivityLogEntry, int32, error)
}

type IdentityService interface {
	// Resolve is a pure read-time join: records owned by the user id (when
	// present) unioned with case-insensitive email matches.
	Resolve(ctx context.Context, hint domain.IdentityHint) (*domain.OwnedRecords, error)
}

// NotificationJob is one fire-and-forget transactional message.
type NotificationJob struct {
	ID         string
	To         string
	Subject    string
	Body       string
	UserID     *int32
	Attributes map[string]string

	retries int
}

type Dispatcher interface {
	// Enqueue hands the job to the background workers and returns
	// immediately. It never fails from the caller's point of view.
	Enqueue(job NotificationJob)
}

type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}
