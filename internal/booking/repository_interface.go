package booking

import (
	"context"
	"time"
)

// NewBooking is the insert payload for the conflict-guarded create.
type NewBooking struct {
	UserID        int
	LessonID      int
	InstrumentID  int
	TimeSlotID    *int
	ScheduledDate time.Time
	StartTime     string
	EndTime       string
	Notes         string
}

type Repository interface {
	// CreateBooking performs the conflict check and the insert inside one
	// transaction. It returns ErrBookingConflict when the window is already
	// claimed by a live booking, including when a concurrent insert wins the
	// race (the partial unique index surfaces as the same error).
	CreateBooking(ctx context.Context, nb NewBooking) (*Booking, error)

	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByLesson(ctx context.Context, lessonID int) ([]BookingWithDetails, error)
	GetBookingsByDate(ctx context.Context, date time.Time) ([]BookingWithDetails, error)

	// UpdateStatusFrom transitions a booking to the given status only while
	// its current status is one of allowedFrom; it reports whether a row
	// changed.
	UpdateStatusFrom(ctx context.Context, id int, to string, allowedFrom []string) (bool, error)

	// Sweeper queries.
	GetConfirmedInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]BookingWithDetails, error)
	CompletePastConfirmed(ctx context.Context, now time.Time) (int64, error)
}
