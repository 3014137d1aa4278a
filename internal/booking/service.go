package booking

import (
	"context"
	"errors"
	"time"

	"tuneslot/internal/email"
	"tuneslot/internal/lesson"
	"tuneslot/internal/logger"
	"tuneslot/internal/metrics"
	"tuneslot/internal/notification"
	"tuneslot/internal/payment"
	"tuneslot/internal/settings"
	"tuneslot/internal/user"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrSlotNotFound       = errors.New("time slot not found")
	ErrSlotInactive       = errors.New("time slot is not active")
	ErrSlotDateMismatch   = errors.New("time slot does not occur on the requested date")
	ErrInvalidBooking     = errors.New("invalid booking request")
	ErrBookingInPast      = errors.New("cannot book a lesson in the past")
	ErrNotOwner           = errors.New("can only cancel own bookings")
	ErrBookingFinal       = errors.New("booking is already in a terminal state")
	ErrCancellationNotice = errors.New("cancellation notice window not satisfied")
)

type Service interface {
	Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, int, error)
	Cancel(ctx context.Context, requesterID int, isAdmin bool, bookingID int) error
	Confirm(ctx context.Context, bookingID int) error
	MarkNoShow(ctx context.Context, bookingID int) error
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByLesson(ctx context.Context, lessonID int) ([]BookingWithDetails, error)
	GetBookingsByDate(ctx context.Context, date time.Time) ([]BookingWithDetails, error)
}

type service struct {
	repo             Repository
	lessonRepo       lesson.Repository
	userRepo         user.Repository
	settingsRepo     settings.Repository
	notificationRepo notification.Repository
	paymentRepo      payment.Repository
	emailService     *email.Service
	now              func() time.Time
}

func NewService(
	repo Repository,
	lessonRepo lesson.Repository,
	userRepo user.Repository,
	settingsRepo settings.Repository,
	notificationRepo notification.Repository,
	paymentRepo payment.Repository,
	emailService *email.Service,
) Service {
	return &service{
		repo:             repo,
		lessonRepo:       lessonRepo,
		userRepo:         userRepo,
		settingsRepo:     settingsRepo,
		notificationRepo: notificationRepo,
		paymentRepo:      paymentRepo,
		emailService:     emailService,
		now:              time.Now,
	}
}

// Create validates the request, runs the conflict-guarded insert, then fires
// the post-commit side effects (payment row, notification, confirmation
// email). Side-effect failures after the booking committed are logged and do
// not undo the booking.
func (s *service) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, int, error) {
	date, err := lesson.ParseDate(req.Date)
	if err != nil {
		return nil, 0, ErrInvalidBooking
	}

	l, err := s.lessonRepo.GetLessonByID(ctx, req.LessonID)
	if err != nil {
		return nil, 0, ErrLessonNotFound
	}

	instrumentID := req.InstrumentID
	if instrumentID == 0 {
		instrumentID = l.InstrumentID
	}

	startTime := req.StartTime
	endTime := req.EndTime

	if req.TimeSlotID != nil {
		slot, err := s.lessonRepo.GetTimeSlotByID(ctx, *req.TimeSlotID)
		if err != nil {
			return nil, 0, ErrSlotNotFound
		}
		if slot.LessonID != l.ID {
			return nil, 0, ErrSlotNotFound
		}
		if !slot.IsActive {
			return nil, 0, ErrSlotInactive
		}
		if lesson.DayOfWeek(date) != slot.DayOfWeek {
			return nil, 0, ErrSlotDateMismatch
		}
		startTime = slot.StartTime
		endTime = slot.EndTime
	} else {
		if !lesson.ValidClock(startTime) || !lesson.ValidClock(endTime) || endTime <= startTime {
			return nil, 0, ErrInvalidBooking
		}
	}

	startsAt, err := lesson.CombineDateClock(date, startTime, time.Local)
	if err != nil {
		return nil, 0, ErrInvalidBooking
	}
	if startsAt.Before(s.now()) {
		return nil, 0, ErrBookingInPast
	}

	booking, err := s.repo.CreateBooking(ctx, NewBooking{
		UserID:        userID,
		LessonID:      l.ID,
		InstrumentID:  instrumentID,
		TimeSlotID:    req.TimeSlotID,
		ScheduledDate: date,
		StartTime:     startTime,
		EndTime:       endTime,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrBookingConflict) {
			metrics.RecordBookingConflict()
		}
		return nil, 0, err
	}

	metrics.RecordBooking(booking.Status)

	paymentID := 0
	p, err := s.paymentRepo.CreateForBooking(ctx, userID, booking.ID, l.PriceCents)
	if err != nil {
		logger.Warnf("Booking %d created but payment row failed: %v", booking.ID, err)
	} else {
		paymentID = p.ID
	}

	if _, err := s.notificationRepo.Create(ctx, userID, &booking.ID,
		notification.TypeBookingConfirmed,
		"Lesson booked",
		l.Title+" on "+lesson.FormatDate(date)+" at "+startTime,
	); err != nil {
		logger.Warnf("Booking %d created but notification failed: %v", booking.ID, err)
	}

	if u, err := s.userRepo.FindByID(ctx, userID); err == nil {
		if err := s.emailService.SendBookingConfirmation(ctx, u.Email, u.Name, l.Title, lesson.FormatDate(date), startTime); err != nil {
			logger.Warnf("Booking %d confirmation email failed: %v", booking.ID, err)
		}
	}

	return booking, paymentID, nil
}

// Cancel enforces ownership and the minimum-notice policy, then performs a
// guarded transition out of a live status. CANCELLED is terminal; cancelling
// a non-live booking is an error, never a silent success.
func (s *service) Cancel(ctx context.Context, requesterID int, isAdmin bool, bookingID int) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if !isAdmin && booking.UserID != requesterID {
		return ErrNotOwner
	}

	if !booking.IsLive() {
		return ErrBookingFinal
	}

	if !isAdmin {
		cfg, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return err
		}

		startsAt, err := lesson.CombineDateClock(booking.ScheduledDate, booking.StartTime, time.Local)
		if err != nil {
			return err
		}

		notice := time.Duration(cfg.CancellationNoticeHours) * time.Hour
		if startsAt.Sub(s.now()) < notice {
			return ErrCancellationNotice
		}
	}

	changed, err := s.repo.UpdateStatusFrom(ctx, bookingID, StatusCancelled, LiveStatuses)
	if err != nil {
		return err
	}
	if !changed {
		return ErrBookingFinal
	}

	metrics.RecordBookingCancellation()

	l, lessonErr := s.lessonRepo.GetLessonByID(ctx, booking.LessonID)
	title := "your lesson"
	if lessonErr == nil {
		title = l.Title
	}

	if _, err := s.notificationRepo.Create(ctx, booking.UserID, &booking.ID,
		notification.TypeBookingCancelled,
		"Lesson cancelled",
		title+" on "+lesson.FormatDate(booking.ScheduledDate)+" at "+booking.StartTime,
	); err != nil {
		logger.Warnf("Booking %d cancelled but notification failed: %v", booking.ID, err)
	}

	if u, err := s.userRepo.FindByID(ctx, booking.UserID); err == nil {
		if err := s.emailService.SendBookingCancellation(ctx, u.Email, u.Name, title,
			lesson.FormatDate(booking.ScheduledDate), booking.StartTime); err != nil {
			logger.Warnf("Booking %d cancellation email failed: %v", booking.ID, err)
		}
	}

	return nil
}

// Confirm moves a PENDING booking to CONFIRMED.
func (s *service) Confirm(ctx context.Context, bookingID int) error {
	return s.transition(ctx, bookingID, StatusConfirmed, []string{StatusPending}, "Booking confirmed")
}

// MarkNoShow is a manual admin-only transition for missed lessons.
func (s *service) MarkNoShow(ctx context.Context, bookingID int) error {
	return s.transition(ctx, bookingID, StatusNoShow, []string{StatusConfirmed}, "Marked as no-show")
}

func (s *service) transition(ctx context.Context, bookingID int, to string, allowedFrom []string, title string) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	changed, err := s.repo.UpdateStatusFrom(ctx, bookingID, to, allowedFrom)
	if err != nil {
		return err
	}
	if !changed {
		return ErrBookingFinal
	}

	if _, err := s.notificationRepo.Create(ctx, booking.UserID, &booking.ID,
		notification.TypeStatusChange, title,
		"Booking on "+lesson.FormatDate(booking.ScheduledDate)+" at "+booking.StartTime,
	); err != nil {
		logger.Warnf("Booking %d transitioned but notification failed: %v", booking.ID, err)
	}

	return nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.GetUserBookings(ctx, userID)
}

func (s *service) GetBookingsByLesson(ctx context.Context, lessonID int) ([]BookingWithDetails, error) {
	return s.repo.GetBookingsByLesson(ctx, lessonID)
}

func (s *service) GetBookingsByDate(ctx context.Context, date time.Time) ([]BookingWithDetails, error) {
	return s.repo.GetBookingsByDate(ctx, date)
}
