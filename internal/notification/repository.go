package notification

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateReminder    = errors.New("reminder already recorded for booking")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID int, bookingID *int, notifType, title, body string) (*Notification, error) {
	query := `
		INSERT INTO notifications (user_id, booking_id, type, title, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, booking_id, type, title, body, is_read, created_at
	`

	var n Notification
	err := r.db.GetContext(ctx, &n, query, userID, bookingID, notifType, title, body)
	if err != nil {
		// The reminder marker is unique per booking; a second sweep racing
		// this insert loses here instead of reminding twice.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateReminder
		}
		return nil, err
	}

	return &n, nil
}

func (r *repository) GetForUser(ctx context.Context, userID int) ([]Notification, error) {
	query := `
		SELECT id, user_id, booking_id, type, title, body, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var notifications []Notification
	err := r.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, id, userID int) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *repository) ReminderExists(ctx context.Context, bookingID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE booking_id = $1 AND type = 'REMINDER'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, bookingID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
