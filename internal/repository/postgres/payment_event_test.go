package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentnest-backend/internal/domain"
)

func TestPaymentEventRepository_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentEventRepository(db)
	ctx := context.Background()

	t.Run("FirstInsert", func(t *testing.T) {
		ev := &domain.PaymentEvent{EventID: "evt-001", RequestID: 101, AmountCents: 15000, Signature: "abc"}

		mock.ExpectExec("INSERT INTO payment_events").
			WithArgs("evt-001", int32(101), int32(15000), "abc", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := repo.Record(ctx, ev)
		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.False(t, ev.ReceivedAt.IsZero())
	})

	t.Run("DuplicateConflictsAway", func(t *testing.T) {
		ev := &domain.PaymentEvent{EventID: "evt-001", RequestID: 101, AmountCents: 15000, Signature: "abc", ReceivedAt: time.Now()}

		mock.ExpectExec("INSERT INTO payment_events").
			WithArgs("evt-001", int32(101), int32(15000), "abc", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := repo.Record(ctx, ev)
		assert.NoError(t, err)
		assert.False(t, inserted)
	})
}

func TestPaymentEventRepository_MarkApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentEventRepository(db)

	mock.ExpectExec("UPDATE payment_events SET applied").
		WithArgs("evt-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkApplied(context.Background(), "evt-001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentEventRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentEventRepository(db)

	mock.ExpectExec("DELETE FROM payment_events WHERE event_id").
		WithArgs("evt-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "evt-001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentEventRepository_PurgeAppliedBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentEventRepository(db)

	cutoff := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM payment_events WHERE applied").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	purged, err := repo.PurgeAppliedBefore(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), purged)
}
