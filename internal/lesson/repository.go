package lesson

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLesson(ctx context.Context, req CreateLessonRequest) (*Lesson, error) {
	query := `
		INSERT INTO lessons (title, description, instrument_id, duration_minutes, price_cents, max_students)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, instrument_id, duration_minutes, price_cents, max_students, is_active, created_at
	`

	maxStudents := req.MaxStudents
	if maxStudents == 0 {
		maxStudents = 1
	}

	var lesson Lesson
	err := r.db.GetContext(ctx, &lesson, query,
		req.Title, req.Description, req.InstrumentID, req.DurationMinutes, req.PriceCents, maxStudents)
	if err != nil {
		return nil, err
	}

	return &lesson, nil
}

func (r *repository) GetLessonByID(ctx context.Context, id int) (*Lesson, error) {
	query := `
		SELECT id, title, description, instrument_id, duration_minutes, price_cents, max_students, is_active, created_at
		FROM lessons
		WHERE id = $1
	`

	var lesson Lesson
	err := r.db.GetContext(ctx, &lesson, query, id)
	if err != nil {
		return nil, err
	}

	return &lesson, nil
}

func (r *repository) GetAllLessons(ctx context.Context, onlyActive bool) ([]Lesson, error) {
	query := `
		SELECT id, title, description, instrument_id, duration_minutes, price_cents, max_students, is_active, created_at
		FROM lessons
	`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY title ASC, id ASC`

	var lessons []Lesson
	err := r.db.SelectContext(ctx, &lessons, query)
	if err != nil {
		return nil, err
	}

	return lessons, nil
}

func (r *repository) UpdateLesson(ctx context.Context, id int, req UpdateLessonRequest) (*Lesson, error) {
	query := `
		UPDATE lessons
		SET title = $2,
		    description = $3,
		    duration_minutes = $4,
		    price_cents = $5,
		    max_students = $6,
		    is_active = COALESCE($7, is_active)
		WHERE id = $1
		RETURNING id, title, description, instrument_id, duration_minutes, price_cents, max_students, is_active, created_at
	`

	var lesson Lesson
	err := r.db.GetContext(ctx, &lesson, query,
		id, req.Title, req.Description, req.DurationMinutes, req.PriceCents, req.MaxStudents, req.IsActive)
	if err != nil {
		return nil, err
	}

	return &lesson, nil
}

func (r *repository) CreateTimeSlot(ctx context.Context, lessonID, dayOfWeek int, startTime, endTime string) (*TimeSlot, error) {
	query := `
		INSERT INTO time_slots (lesson_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lesson_id, day_of_week, start_time, end_time, is_active, created_at
	`

	var slot TimeSlot
	err := r.db.GetContext(ctx, &slot, query, lessonID, dayOfWeek, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetTimeSlotByID(ctx context.Context, id int) (*TimeSlot, error) {
	query := `
		SELECT id, lesson_id, day_of_week, start_time, end_time, is_active, created_at
		FROM time_slots
		WHERE id = $1
	`

	var slot TimeSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetTimeSlotsByLesson(ctx context.Context, lessonID int) ([]TimeSlot, error) {
	query := `
		SELECT id, lesson_id, day_of_week, start_time, end_time, is_active, created_at
		FROM time_slots
		WHERE lesson_id = $1
		ORDER BY day_of_week ASC, start_time ASC, id ASC
	`

	var slots []TimeSlot
	err := r.db.SelectContext(ctx, &slots, query, lessonID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetActiveSlotsForDay(ctx context.Context, lessonID, dayOfWeek int) ([]TimeSlot, error) {
	query := `
		SELECT id, lesson_id, day_of_week, start_time, end_time, is_active, created_at
		FROM time_slots
		WHERE lesson_id = $1 AND day_of_week = $2 AND is_active
		ORDER BY start_time ASC, id ASC
	`

	var slots []TimeSlot
	err := r.db.SelectContext(ctx, &slots, query, lessonID, dayOfWeek)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) UpdateTimeSlot(ctx context.Context, id, dayOfWeek int, startTime, endTime string) (*TimeSlot, error) {
	query := `
		UPDATE time_slots
		SET day_of_week = $2, start_time = $3, end_time = $4
		WHERE id = $1
		RETURNING id, lesson_id, day_of_week, start_time, end_time, is_active, created_at
	`

	var slot TimeSlot
	err := r.db.GetContext(ctx, &slot, query, id, dayOfWeek, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) SetTimeSlotActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE time_slots SET is_active = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, active)
	return err
}

func (r *repository) DeleteTimeSlot(ctx context.Context, id int) error {
	query := `DELETE FROM time_slots WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) GetBookingMarkersForDate(ctx context.Context, date time.Time) (*BookingMarkers, error) {
	query := `
		SELECT time_slot_id, start_time
		FROM bookings
		WHERE scheduled_date = $1 AND status IN ('PENDING', 'CONFIRMED')
	`

	rows, err := r.db.QueryxContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	markers := &BookingMarkers{
		SlotIDs:    make(map[int]struct{}),
		StartTimes: make(map[string]struct{}),
	}

	for rows.Next() {
		var slotID *int
		var startTime string
		if err := rows.Scan(&slotID, &startTime); err != nil {
			return nil, err
		}
		if slotID != nil {
			markers.SlotIDs[*slotID] = struct{}{}
		}
		markers.StartTimes[startTime] = struct{}{}
	}

	return markers, rows.Err()
}

func (r *repository) SlotHasFutureLiveBooking(ctx context.Context, slotID int, from time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE time_slot_id = $1
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND scheduled_date >= $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, slotID, from.Format(dateLayout))
	if err != nil {
		return false, err
	}

	return exists, nil
}
