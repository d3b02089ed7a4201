package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO requests (kind, status, payment_status, user_id, email, phone, delivery_charge_cents, expected_total_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		req.Kind, req.Status, req.PaymentStatus, req.UserID, req.Email, req.Phone,
		req.DeliveryChargeCents, req.ExpectedTotalCents, now, now,
	).Scan(&req.ID)
	if err != nil {
		return err
	}
	req.CreatedOn = now
	req.UpdatedOn = now

	itemQuery := `INSERT INTO request_items (request_id, name, quantity, monthly_price_cents, deposit_cents)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range req.Items {
		it := &req.Items[i]
		it.RequestID = req.ID
		if err := tx.QueryRowContext(ctx, itemQuery, req.ID, it.Name, it.Quantity, it.MonthlyPriceCents, it.DepositCents).Scan(&it.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	req := &domain.Request{}
	query := `SELECT id, kind, status, payment_status, user_id, email, phone, delivery_charge_cents, expected_total_cents, scheduled_delivery_date, materialized_rental_id, created_on, updated_on
	          FROM requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.Kind, &req.Status, &req.PaymentStatus, &req.UserID, &req.Email, &req.Phone,
		&req.DeliveryChargeCents, &req.ExpectedTotalCents, &req.ScheduledDeliveryDate,
		&req.MaterializedRentalID, &req.CreatedOn, &req.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

func (r *requestRepository) getItems(ctx context.Context, requestID int32) ([]domain.RequestItem, error) {
	query := `SELECT id, request_id, name, quantity, monthly_price_cents, deposit_cents
	          FROM request_items WHERE request_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RequestItem
	for rows.Next() {
		var it domain.RequestItem
		if err := rows.Scan(&it.ID, &it.RequestID, &it.Name, &it.Quantity, &it.MonthlyPriceCents, &it.DepositCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *requestRepository) CompareAndSwapStatus(ctx context.Context, id int32, expected, target domain.Status, pay domain.PaymentStatus, scheduled *time.Time) (bool, error) {
	query := `UPDATE requests
	          SET status = $1, payment_status = $2,
	              scheduled_delivery_date = COALESCE($3, scheduled_delivery_date),
	              updated_on = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, target, pay, scheduled, time.Now(), id, expected)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *requestRepository) ListIDsByIdentity(ctx context.Context, userID *int32, email string) ([]int32, error) {
	query := `SELECT id FROM requests
	          WHERE ($1::int IS NOT NULL AND user_id = $1) OR lower(email) = lower($2)
	          ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *requestRepository) ListScheduledDeliveriesDue(ctx context.Context, by time.Time) ([]domain.Request, error) {
	query := `SELECT id, kind, status, payment_status, user_id, email, phone, delivery_charge_cents, expected_total_cents, scheduled_delivery_date, materialized_rental_id, created_on, updated_on
	          FROM requests
	          WHERE status = $1 AND scheduled_delivery_date <= $2
	          ORDER BY scheduled_delivery_date`
	rows, err := r.db.QueryContext(ctx, query, domain.StatusScheduledDelivery, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.Request
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(
			&req.ID, &req.Kind, &req.Status, &req.PaymentStatus, &req.UserID, &req.Email, &req.Phone,
			&req.DeliveryChargeCents, &req.ExpectedTotalCents, &req.ScheduledDeliveryDate,
			&req.MaterializedRentalID, &req.CreatedOn, &req.UpdatedOn,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
