package notification

import "time"

const (
	TypeBookingConfirmed = "BOOKING_CONFIRMED"
	TypeBookingCancelled = "BOOKING_CANCELLED"
	TypeReminder         = "REMINDER"
	TypeStatusChange     = "STATUS_CHANGE"
)

type Notification struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	BookingID *int      `db:"booking_id" json:"booking_id,omitempty"`
	Type      string    `db:"type" json:"type"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
