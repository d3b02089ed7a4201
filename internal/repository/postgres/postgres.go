package postgres

import (
	"database/sql"

	"rentnest-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RequestRepository
	repository.RentalRepository
	repository.PaymentEventRepository
	repository.ActivityLogRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		RequestRepository:      NewRequestRepository(db),
		RentalRepository:       NewRentalRepository(db),
		PaymentEventRepository: NewPaymentEventRepository(db),
		ActivityLogRepository:  NewActivityLogRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
