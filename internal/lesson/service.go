package lesson

import (
	"context"
	"errors"
	"time"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrInvalidSlot     = errors.New("invalid time slot")
	ErrSlotOverlap     = errors.New("time slot overlaps an existing slot")
	ErrSlotHasBookings = errors.New("time slot has future bookings and can only be deactivated")
)

type Service interface {
	CreateLesson(ctx context.Context, req CreateLessonRequest) (*Lesson, error)
	GetLesson(ctx context.Context, id int) (*Lesson, error)
	ListLessons(ctx context.Context, onlyActive bool) ([]Lesson, error)
	UpdateLesson(ctx context.Context, id int, req UpdateLessonRequest) (*Lesson, error)

	CreateTimeSlot(ctx context.Context, lessonID int, req CreateTimeSlotRequest) (*TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, slotID int, req UpdateTimeSlotRequest) (*TimeSlot, error)
	DeactivateTimeSlot(ctx context.Context, slotID int) error
	DeleteTimeSlot(ctx context.Context, slotID int) error
	ListTimeSlots(ctx context.Context, lessonID int) ([]TimeSlot, error)

	HasOverlap(ctx context.Context, lessonID, dayOfWeek int, startTime, endTime string, excludeSlotID int) (bool, error)
	ResolveAvailability(ctx context.Context, lessonID int, date time.Time) ([]SlotAvailability, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreateLesson(ctx context.Context, req CreateLessonRequest) (*Lesson, error) {
	return s.repo.CreateLesson(ctx, req)
}

func (s *service) GetLesson(ctx context.Context, id int) (*Lesson, error) {
	lesson, err := s.repo.GetLessonByID(ctx, id)
	if err != nil {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

func (s *service) ListLessons(ctx context.Context, onlyActive bool) ([]Lesson, error) {
	return s.repo.GetAllLessons(ctx, onlyActive)
}

func (s *service) UpdateLesson(ctx context.Context, id int, req UpdateLessonRequest) (*Lesson, error) {
	lesson, err := s.repo.UpdateLesson(ctx, id, req)
	if err != nil {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}

// HasOverlap reports whether the candidate window collides with any active
// slot of the same lesson on the same weekday. excludeSlotID carves the slot
// itself out of the comparison set when re-validating an edit; pass 0 for
// creation.
func (s *service) HasOverlap(ctx context.Context, lessonID, dayOfWeek int, startTime, endTime string, excludeSlotID int) (bool, error) {
	slots, err := s.repo.GetActiveSlotsForDay(ctx, lessonID, dayOfWeek)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.ID == excludeSlotID {
			continue
		}
		if ClocksOverlap(startTime, endTime, slot.StartTime, slot.EndTime) {
			return true, nil
		}
	}

	return false, nil
}

func validateSlotWindow(dayOfWeek int, startTime, endTime string) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ErrInvalidSlot
	}
	if !ValidClock(startTime) || !ValidClock(endTime) {
		return ErrInvalidSlot
	}
	// Rejects both zero-length and cross-midnight windows.
	if endTime <= startTime {
		return ErrInvalidSlot
	}
	return nil
}

func (s *service) CreateTimeSlot(ctx context.Context, lessonID int, req CreateTimeSlotRequest) (*TimeSlot, error) {
	if _, err := s.repo.GetLessonByID(ctx, lessonID); err != nil {
		return nil, ErrLessonNotFound
	}

	if req.DayOfWeek == nil {
		return nil, ErrInvalidSlot
	}
	dayOfWeek := *req.DayOfWeek

	if err := validateSlotWindow(dayOfWeek, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	overlap, err := s.HasOverlap(ctx, lessonID, dayOfWeek, req.StartTime, req.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrSlotOverlap
	}

	return s.repo.CreateTimeSlot(ctx, lessonID, dayOfWeek, req.StartTime, req.EndTime)
}

func (s *service) UpdateTimeSlot(ctx context.Context, slotID int, req UpdateTimeSlotRequest) (*TimeSlot, error) {
	slot, err := s.repo.GetTimeSlotByID(ctx, slotID)
	if err != nil {
		return nil, ErrSlotNotFound
	}

	if req.DayOfWeek == nil {
		return nil, ErrInvalidSlot
	}
	dayOfWeek := *req.DayOfWeek

	if err := validateSlotWindow(dayOfWeek, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	overlap, err := s.HasOverlap(ctx, slot.LessonID, dayOfWeek, req.StartTime, req.EndTime, slot.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrSlotOverlap
	}

	return s.repo.UpdateTimeSlot(ctx, slotID, dayOfWeek, req.StartTime, req.EndTime)
}

// DeactivateTimeSlot soft-disables a slot. Slots referenced by a future live
// booking are never hard-deleted; deactivation is the only removal path.
func (s *service) DeactivateTimeSlot(ctx context.Context, slotID int) error {
	if _, err := s.repo.GetTimeSlotByID(ctx, slotID); err != nil {
		return ErrSlotNotFound
	}

	return s.repo.SetTimeSlotActive(ctx, slotID, false)
}

// DeleteTimeSlot removes a slot outright. A slot referenced by a future live
// booking must be deactivated instead; deletion is refused so the booking
// keeps its slot reference.
func (s *service) DeleteTimeSlot(ctx context.Context, slotID int) error {
	if _, err := s.repo.GetTimeSlotByID(ctx, slotID); err != nil {
		return ErrSlotNotFound
	}

	referenced, err := s.repo.SlotHasFutureLiveBooking(ctx, slotID, s.now())
	if err != nil {
		return err
	}
	if referenced {
		return ErrSlotHasBookings
	}

	return s.repo.DeleteTimeSlot(ctx, slotID)
}

func (s *service) ListTimeSlots(ctx context.Context, lessonID int) ([]TimeSlot, error) {
	if _, err := s.repo.GetLessonByID(ctx, lessonID); err != nil {
		return nil, ErrLessonNotFound
	}

	return s.repo.GetTimeSlotsByLesson(ctx, lessonID)
}

// ResolveAvailability projects the lesson's weekly template onto a concrete
// calendar date. A slot is occupied if a live booking references its id, or
// if a live booking claims its start time without a slot id; both signals
// block the same wall-clock window.
func (s *service) ResolveAvailability(ctx context.Context, lessonID int, date time.Time) ([]SlotAvailability, error) {
	if _, err := s.repo.GetLessonByID(ctx, lessonID); err != nil {
		return nil, ErrLessonNotFound
	}

	slots, err := s.repo.GetActiveSlotsForDay(ctx, lessonID, DayOfWeek(date))
	if err != nil {
		return nil, err
	}

	markers, err := s.repo.GetBookingMarkersForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		_, slotTaken := markers.SlotIDs[slot.ID]
		_, timeTaken := markers.StartTimes[slot.StartTime]

		result = append(result, SlotAvailability{
			SlotID:      slot.ID,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: !slotTaken && !timeTaken,
		})
	}

	return result, nil
}
