package payment

import "context"

type Repository interface {
	CreateForBooking(ctx context.Context, userID, bookingID int, amountCents int64) (*Payment, error)
	CreateForOrder(ctx context.Context, userID, orderID int, amountCents int64) (*Payment, error)
	GetByID(ctx context.Context, id int) (*Payment, error)
	GetForUser(ctx context.Context, userID int) ([]Payment, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Payment, error)
}
