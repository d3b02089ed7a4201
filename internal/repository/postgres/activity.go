package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

type activityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, e *domain.ActivityLogEntry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}
	query := `INSERT INTO activity_log (user_id, action, details, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRowContext(ctx, query, e.UserID, e.Action, details, now).Scan(&e.ID); err != nil {
		return err
	}
	e.CreatedOn = now
	return nil
}

func (r *activityLogRepository) ListByUser(ctx context.Context, userID, limit, offset int32) ([]domain.ActivityLogEntry, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM activity_log WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, action, details, created_on
	          FROM activity_log WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ActivityLogEntry
	for rows.Next() {
		var e domain.ActivityLogEntry
		var details []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &details, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, 0, err
			}
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
