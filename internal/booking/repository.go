package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrBookingConflict = errors.New("this time slot is already booked")

const dateLayout = "2006-01-02"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, user_id, lesson_id, instrument_id, time_slot_id, scheduled_date, start_time, end_time, status, notes, created_at`

func (r *repository) CreateBooking(ctx context.Context, nb NewBooking) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// A live booking conflicts when it claims the same wall-clock window by
	// raw start time or by slot id. The same-user channel collapses into the
	// start-time match: a user re-booking an identical window hits it too.
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE scheduled_date = $1
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND (start_time = $2 OR ($3::int IS NOT NULL AND time_slot_id = $3))
		)
	`

	var conflict bool
	err = tx.GetContext(ctx, &conflict, checkQuery,
		nb.ScheduledDate.Format(dateLayout), nb.StartTime, nb.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrBookingConflict
	}

	insertQuery := `
		INSERT INTO bookings (user_id, lesson_id, instrument_id, time_slot_id, scheduled_date, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'CONFIRMED', $8)
		RETURNING ` + bookingColumns

	var booking Booking
	err = tx.GetContext(ctx, &booking, insertQuery,
		nb.UserID, nb.LessonID, nb.InstrumentID, nb.TimeSlotID,
		nb.ScheduledDate.Format(dateLayout), nb.StartTime, nb.EndTime, nb.Notes)
	if err != nil {
		// Two requests can pass the check concurrently; the partial unique
		// index picks the single winner and the loser lands here.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY scheduled_date DESC, start_time DESC, id DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

const detailColumns = `
		b.id,
		b.user_id,
		b.lesson_id,
		b.instrument_id,
		b.time_slot_id,
		b.scheduled_date,
		b.start_time,
		b.end_time,
		b.status,
		b.notes,
		b.created_at,
		l.title AS lesson_title,
		i.name AS instrument_name,
		u.name AS user_name,
		u.email AS user_email`

func (r *repository) GetBookingsByLesson(ctx context.Context, lessonID int) ([]BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN lessons l ON b.lesson_id = l.id
		JOIN instruments i ON b.instrument_id = i.id
		JOIN users u ON b.user_id = u.id
		WHERE b.lesson_id = $1
		ORDER BY b.scheduled_date DESC, b.start_time DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, lessonID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingsByDate(ctx context.Context, date time.Time) ([]BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN lessons l ON b.lesson_id = l.id
		JOIN instruments i ON b.instrument_id = i.id
		JOIN users u ON b.user_id = u.id
		WHERE b.scheduled_date = $1
		ORDER BY b.start_time ASC, b.id ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) UpdateStatusFrom(ctx context.Context, id int, to string, allowedFrom []string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.ExecContext(ctx, query, id, to, pq.Array(allowedFrom))
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// GetConfirmedInWindow returns confirmed bookings whose scheduled instant
// falls in [windowStart, windowEnd) and that have not been reminded yet.
func (r *repository) GetConfirmedInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]BookingWithDetails, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM bookings b
		JOIN lessons l ON b.lesson_id = l.id
		JOIN instruments i ON b.instrument_id = i.id
		JOIN users u ON b.user_id = u.id
		WHERE b.status = 'CONFIRMED'
		  AND b.scheduled_date + b.start_time::time >= $1
		  AND b.scheduled_date + b.start_time::time < $2
		  AND NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.booking_id = b.id AND n.type = 'REMINDER'
		  )
		ORDER BY b.scheduled_date ASC, b.start_time ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// CompletePastConfirmed bulk-transitions confirmed bookings whose scheduled
// instant is strictly in the past. Idempotent: re-running touches nothing.
func (r *repository) CompletePastConfirmed(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'COMPLETED'
		WHERE status = 'CONFIRMED'
		  AND scheduled_date + start_time::time < $1
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
