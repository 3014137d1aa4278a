package booking

import "time"

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NO_SHOW"
)

// LiveStatuses are the booking states that occupy a slot instance.
var LiveStatuses = []string{StatusPending, StatusConfirmed}

type Booking struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	LessonID      int       `db:"lesson_id" json:"lesson_id"`
	InstrumentID  int       `db:"instrument_id" json:"instrument_id"`
	TimeSlotID    *int      `db:"time_slot_id" json:"time_slot_id,omitempty"`
	ScheduledDate time.Time `db:"scheduled_date" json:"scheduled_date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	Status        string    `db:"status" json:"status"`
	Notes         string    `db:"notes" json:"notes"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

func (b *Booking) IsLive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

type BookingWithDetails struct {
	Booking
	LessonTitle    string `db:"lesson_title" json:"lesson_title"`
	InstrumentName string `db:"instrument_name" json:"instrument_name"`
	UserName       string `db:"user_name" json:"user_name"`
	UserEmail      string `db:"user_email" json:"user_email"`
}

type CreateBookingRequest struct {
	LessonID     int    `json:"lesson_id" binding:"required"`
	InstrumentID int    `json:"instrument_id"`
	TimeSlotID   *int   `json:"time_slot_id"`
	Date         string `json:"date" binding:"required,dateonly"`
	StartTime    string `json:"start_time" binding:"omitempty,clock"`
	EndTime      string `json:"end_time" binding:"omitempty,clock"`
	Notes        string `json:"notes"`
}

type CreateBookingResponse struct {
	Booking   *Booking `json:"booking"`
	PaymentID int      `json:"payment_id"`
}

type CancelBookingResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully"`
}
