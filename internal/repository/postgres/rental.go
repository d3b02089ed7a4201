package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// CreateForRequest inserts the rental and stamps the back-reference on the
// request in one transaction. The conditional update on materialized_rental_id
// is the at-most-once guard: if another writer already materialized the
// request, the whole transaction rolls back and created=false is returned.
func (r *rentalRepository) CreateForRequest(ctx context.Context, rt *domain.Rental) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO rentals (request_id, user_id, email, total_monthly_cents, total_deposit_cents, delivery_charge_cents, total_amount_cents, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		rt.RequestID, rt.UserID, rt.Email,
		rt.TotalMonthlyCents, rt.TotalDepositCents, rt.DeliveryChargeCents, rt.TotalAmountCents, now,
	).Scan(&rt.ID)
	if err != nil {
		return false, err
	}
	rt.CreatedOn = now

	itemQuery := `INSERT INTO rental_items (rental_id, name, quantity, monthly_price_cents, deposit_cents)
	              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range rt.Items {
		it := &rt.Items[i]
		it.RentalID = rt.ID
		if err := tx.QueryRowContext(ctx, itemQuery, rt.ID, it.Name, it.Quantity, it.MonthlyPriceCents, it.DepositCents).Scan(&it.ID); err != nil {
			return false, err
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE requests SET materialized_rental_id = $1, updated_on = $2 WHERE id = $3 AND materialized_rental_id IS NULL`,
		rt.ID, now, rt.RequestID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Lost the race: some other delivery already materialized this request.
		return false, nil
	}

	return true, tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT id, request_id, user_id, email, total_monthly_cents, total_deposit_cents, delivery_charge_cents, total_amount_cents, created_on
	          FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.RequestID, &rt.UserID, &rt.Email,
		&rt.TotalMonthlyCents, &rt.TotalDepositCents, &rt.DeliveryChargeCents, &rt.TotalAmountCents, &rt.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	itemQuery := `SELECT id, rental_id, name, quantity, monthly_price_cents, deposit_cents
	              FROM rental_items WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.RentalID, &it.Name, &it.Quantity, &it.MonthlyPriceCents, &it.DepositCents); err != nil {
			return nil, err
		}
		rt.Items = append(rt.Items, it)
	}
	return rt, rows.Err()
}

func (r *rentalRepository) ListIDsByIdentity(ctx context.Context, userID *int32, email string) ([]int32, error) {
	query := `SELECT id FROM rentals
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
