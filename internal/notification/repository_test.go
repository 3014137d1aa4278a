package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func notificationRows(id int, bookingID *int, notifType string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "booking_id", "type", "title", "body", "is_read", "created_at",
	}).AddRow(id, 5, bookingID, notifType, "Reminder", "Lesson soon", false, time.Now())
}

func intPtr(v int) *int { return &v }

func TestRepository_Create(t *testing.T) {
	t.Run("inserts and returns the notification", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(5, intPtr(10), TypeReminder, "Reminder", "Lesson soon").
			WillReturnRows(notificationRows(1, intPtr(10), TypeReminder))

		n, err := repo.Create(context.Background(), 5, intPtr(10), TypeReminder, "Reminder", "Lesson soon")

		require.NoError(t, err)
		assert.Equal(t, 1, n.ID)
		assert.Equal(t, TypeReminder, n.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second reminder for the same booking maps the unique violation", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(5, intPtr(10), TypeReminder, "Reminder", "Lesson soon").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "notifications_reminder_uniq"})

		_, err := repo.Create(context.Background(), 5, intPtr(10), TypeReminder, "Reminder", "Lesson soon")

		assert.ErrorIs(t, err, ErrDuplicateReminder)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkRead(t *testing.T) {
	t.Run("marks own notification", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("UPDATE notifications").
			WithArgs(1, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkRead(context.Background(), 1, 5)
		assert.NoError(t, err)
	})

	t.Run("someone else's notification is not found", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectExec("UPDATE notifications").
			WithArgs(1, 6).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkRead(context.Background(), 1, 6)
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}

func TestRepository_ReminderExists(t *testing.T) {
	repo, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ReminderExists(context.Background(), 10)

	require.NoError(t, err)
	assert.True(t, exists)
}
