package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rentnest-backend/internal/domain"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)

	note := &domain.Notification{
		UserID:     5,
		Title:      "Update on your request #101",
		Message:    "Your furniture rental request #101 is now CONFIRMED.",
		Attributes: map[string]string{"type": "STATUS_CHANGED", "request_id": "101"},
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(note.UserID, note.Title, note.Message, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	assert.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, int32(1), note.ID)
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM notifications").
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM notifications").
		WithArgs(int32(5), int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "is_read", "attributes", "created_on"}).
			AddRow(2, 5, "Your rental #901 is active", "Delivered.", false, []byte(`{"type":"RENTAL_ACTIVATED"}`), time.Now()).
			AddRow(1, 5, "We received your request #101", "Hello.", true, []byte(`{"type":"REQUEST_RECEIVED"}`), time.Now()))

	notes, total, err := repo.List(context.Background(), 5, 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Len(t, notes, 2)
	assert.Equal(t, "RENTAL_ACTIVATED", notes[0].Attributes["type"])
	assert.True(t, notes[1].IsRead)
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewNotificationRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read").
			WithArgs(int32(1), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkAsRead(context.Background(), 1, 5))
	})

	t.Run("WrongOwner", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read").
			WithArgs(int32(1), int32(6)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(context.Background(), 1, 6)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
