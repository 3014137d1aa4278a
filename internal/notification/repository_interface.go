package notification

import "context"

type Repository interface {
	Create(ctx context.Context, userID int, bookingID *int, notifType, title, body string) (*Notification, error)
	GetForUser(ctx context.Context, userID int) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
	ReminderExists(ctx context.Context, bookingID int) (bool, error)
}
