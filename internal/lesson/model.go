package lesson

import "time"

type Lesson struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	InstrumentID    int       `db:"instrument_id" json:"instrument_id"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	MaxStudents     int       `db:"max_students" json:"max_students"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// TimeSlot is a recurring weekly availability window. DayOfWeek is 0-6 with
// 0=Sunday; StartTime and EndTime are zero-padded "HH:MM" wall-clock strings.
type TimeSlot struct {
	ID        int       `db:"id" json:"id"`
	LessonID  int       `db:"lesson_id" json:"lesson_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SlotAvailability is one projected slot for a concrete calendar date.
type SlotAvailability struct {
	SlotID      int    `json:"slot_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// BookingMarkers are the occupancy signals for one calendar date: time slot
// ids referenced by live bookings, and raw start times claimed by live
// bookings that were created without a slot id.
type BookingMarkers struct {
	SlotIDs    map[int]struct{}
	StartTimes map[string]struct{}
}

type CreateLessonRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	InstrumentID    int    `json:"instrument_id" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	PriceCents      int64  `json:"price_cents" binding:"required,min=0"`
	MaxStudents     int    `json:"max_students" binding:"min=1"`
}

type UpdateLessonRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
	MaxStudents     int    `json:"max_students" binding:"min=1"`
	IsActive        *bool  `json:"is_active"`
}

type CreateTimeSlotRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}

type UpdateTimeSlotRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
}
