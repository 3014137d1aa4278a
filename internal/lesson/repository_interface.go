package lesson

import (
	"context"
	"time"
)

type Repository interface {
	CreateLesson(ctx context.Context, req CreateLessonRequest) (*Lesson, error)
	GetLessonByID(ctx context.Context, id int) (*Lesson, error)
	GetAllLessons(ctx context.Context, onlyActive bool) ([]Lesson, error)
	UpdateLesson(ctx context.Context, id int, req UpdateLessonRequest) (*Lesson, error)

	CreateTimeSlot(ctx context.Context, lessonID, dayOfWeek int, startTime, endTime string) (*TimeSlot, error)
	GetTimeSlotByID(ctx context.Context, id int) (*TimeSlot, error)
	GetTimeSlotsByLesson(ctx context.Context, lessonID int) ([]TimeSlot, error)
	GetActiveSlotsForDay(ctx context.Context, lessonID, dayOfWeek int) ([]TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, id, dayOfWeek int, startTime, endTime string) (*TimeSlot, error)
	SetTimeSlotActive(ctx context.Context, id int, active bool) error
	DeleteTimeSlot(ctx context.Context, id int) error

	GetBookingMarkersForDate(ctx context.Context, date time.Time) (*BookingMarkers, error)
	SlotHasFutureLiveBooking(ctx context.Context, slotID int, from time.Time) (bool, error)
}
