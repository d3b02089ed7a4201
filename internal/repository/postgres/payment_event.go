package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type paymentEventRepository struct {
	db *sql.DB
}

func NewPaymentEventRepository(db *sql.DB) repository.PaymentEventRepository {
	return &paymentEventRepository{db: db}
}

// Record claims the event id. The unique index on event_id plus
// ON CONFLICT DO NOTHING makes the check-and-insert atomic: of any number of
// concurrent redeliveries of the same id, exactly one insert reports a row.
func (r *paymentEventRepository) Record(ctx context.Context, ev *domain.PaymentEvent) (bool, error) {
	if ev.ReceivedAt.IsZero() {
		ev.ReceivedAt = time.Now()
	}
	query := `INSERT INTO payment_events (event_id, request_id, amount_cents, signature, received_at, applied)
	          VALUES ($1, $2, $3, $4, $5, FALSE)
	          ON CONFLICT (event_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, ev.EventID, ev.RequestID, ev.AmountCents, ev.Signature, ev.ReceivedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *paymentEventRepository) MarkApplied(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE payment_events SET applied = TRUE WHERE event_id = $1`, eventID)
	return err
}

func (r *paymentEventRepository) Delete(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payment_events WHERE event_id = $1`, eventID)
	return err
}

func (r *paymentEventRepository) PurgeAppliedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_events WHERE applied AND received_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
