package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentnest-backend/internal/config"
	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository/postgres"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func newJobRunnerFixture(t *testing.T) (*JobRunner, sqlmock.Sqlmock, *mockEmailService) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	email := new(mockEmailService)
	cfg := &config.Config{}
	cfg.Payment.EventRetentionDays = 90

	runner := NewJobRunner(db, postgres.NewStore(db), &Services{Email: email}, cfg)
	return runner, mock, email
}

func TestSendDeliveryReminders(t *testing.T) {
	runner, dbmock, email := newJobRunnerFixture(t)

	date := time.Now().Add(12 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "kind", "status", "payment_status", "user_id", "email", "phone", "delivery_charge_cents", "expected_total_cents", "scheduled_delivery_date", "materialized_rental_id", "created_on", "updated_on"}).
		AddRow(101, "FURNITURE_RENT", "SCHEDULED_DELIVERY", "PAID", nil, "guest@example.com", "555-0100", 1500, 15000, date, nil, time.Now(), time.Now())

	dbmock.ExpectQuery("SELECT (.+) FROM requests").
		WithArgs(domain.StatusScheduledDelivery, sqlmock.AnyArg()).
		WillReturnRows(rows)
	email.On("Send", mock.Anything, "guest@example.com", mock.Anything, mock.Anything).Return(nil).Once()

	runner.SendDeliveryReminders()

	email.AssertExpectations(t)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestSendDeliveryReminders_ContinuesAfterSendFailure(t *testing.T) {
	runner, dbmock, email := newJobRunnerFixture(t)

	date := time.Now().Add(12 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "kind", "status", "payment_status", "user_id", "email", "phone", "delivery_charge_cents", "expected_total_cents", "scheduled_delivery_date", "materialized_rental_id", "created_on", "updated_on"}).
		AddRow(101, "FURNITURE_RENT", "SCHEDULED_DELIVERY", "PAID", nil, "a@example.com", "555-0100", 0, 0, date, nil, time.Now(), time.Now()).
		AddRow(102, "FURNITURE_RENT", "SCHEDULED_DELIVERY", "PAID", nil, "b@example.com", "555-0101", 0, 0, date, nil, time.Now(), time.Now())

	dbmock.ExpectQuery("SELECT (.+) FROM requests").
		WithArgs(domain.StatusScheduledDelivery, sqlmock.AnyArg()).
		WillReturnRows(rows)
	email.On("Send", mock.Anything, "a@example.com", mock.Anything, mock.Anything).
		Return(errors.New("smtp 421")).Once()
	email.On("Send", mock.Anything, "b@example.com", mock.Anything, mock.Anything).Return(nil).Once()

	runner.SendDeliveryReminders()

	email.AssertExpectations(t)
}

func TestPurgeSettledPaymentEvents(t *testing.T) {
	runner, dbmock, _ := newJobRunnerFixture(t)

	dbmock.ExpectExec("DELETE FROM payment_events WHERE applied").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 5))

	runner.PurgeSettledPaymentEvents()

	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestRunWithRecovery_AbsorbsPanic(t *testing.T) {
	runner, _, _ := newJobRunnerFixture(t)

	assert.NotPanics(t, func() {
		runner.runWithRecovery("ExplodingJob", func() {
			panic("boom")
		})
	})
}
