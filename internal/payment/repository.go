package payment

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPaymentNotFound = errors.New("payment not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, user_id, booking_id, order_id, amount_cents, status, created_at`

func (r *repository) CreateForBooking(ctx context.Context, userID, bookingID int, amountCents int64) (*Payment, error) {
	query := `
		INSERT INTO payments (user_id, booking_id, amount_cents)
		VALUES ($1, $2, $3)
		RETURNING ` + paymentColumns

	var p Payment
	err := r.db.GetContext(ctx, &p, query, userID, bookingID, amountCents)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) CreateForOrder(ctx context.Context, userID, orderID int, amountCents int64) (*Payment, error) {
	query := `
		INSERT INTO payments (user_id, order_id, amount_cents)
		VALUES ($1, $2, $3)
		RETURNING ` + paymentColumns

	var p Payment
	err := r.db.GetContext(ctx, &p, query, userID, orderID, amountCents)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetForUser(ctx context.Context, userID int) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, userID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) (*Payment, error) {
	query := `
		UPDATE payments
		SET status = $2
		WHERE id = $1
		RETURNING ` + paymentColumns

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id, status)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	return &p, nil
}
