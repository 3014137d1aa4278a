package payment

import "time"

const (
	StatusPending  = "PENDING"
	StatusPaid     = "PAID"
	StatusRefunded = "REFUNDED"
)

type Payment struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	BookingID   *int      `db:"booking_id" json:"booking_id,omitempty"`
	OrderID     *int      `db:"order_id" json:"order_id,omitempty"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PAID REFUNDED"`
}
