package sweeper

import (
	"context"
	"errors"
	"time"

	"tuneslot/internal/booking"
	"tuneslot/internal/email"
	"tuneslot/internal/lesson"
	"tuneslot/internal/logger"
	"tuneslot/internal/metrics"
	"tuneslot/internal/notification"
	"tuneslot/internal/settings"
)

// Result reports what a single sweep did.
type Result struct {
	RemindersSent int   `json:"reminders_sent"`
	Completed     int64 `json:"completed"`
}

// Sweeper advances booking state on a timer: reminder notifications ahead of
// upcoming lessons, and auto-completion of lessons whose time has passed.
type Sweeper struct {
	bookingRepo      booking.Repository
	notificationRepo notification.Repository
	settingsRepo     settings.Repository
	emailService     *email.Service
	interval         time.Duration
	now              func() time.Time
	stopChan         chan struct{}
}

func New(
	bookingRepo booking.Repository,
	notificationRepo notification.Repository,
	settingsRepo settings.Repository,
	emailService *email.Service,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		settingsRepo:     settingsRepo,
		emailService:     emailService,
		interval:         interval,
		now:              time.Now,
		stopChan:         make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop or ctx cancellation. The first sweep
// fires immediately.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	logger.Info("Booking sweeper started", "interval", s.interval.String())

	s.sweepAndLog(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepAndLog(ctx)
		case <-s.stopChan:
			logger.Info("Booking sweeper stopped")
			return
		case <-ctx.Done():
			logger.Info("Booking sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweepAndLog(ctx context.Context) {
	result, err := s.Sweep(ctx)
	if err != nil {
		logger.Errorf("Sweep failed: %v", err)
		return
	}
	logger.Info("Sweep finished",
		"reminders_sent", result.RemindersSent,
		"completed", result.Completed,
	)
}

// Sweep performs one pass: reminders first, then completion. A failure in
// one phase does not prevent the other from running.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	var result Result
	var errs []error

	sent, err := s.sendReminders(ctx)
	result.RemindersSent = sent
	if err != nil {
		errs = append(errs, err)
	}

	completed, err := s.completePast(ctx)
	result.Completed = completed
	if err != nil {
		errs = append(errs, err)
	}

	return result, errors.Join(errs...)
}

// sendReminders notifies confirmed bookings starting within the configured
// lead time. The window is hour-granular: [truncate(now+lead, 1h), +1h). The
// repository query already excludes bookings with a prior REMINDER
// notification, and the marker insert is unique per booking, so repeated or
// overlapping sweeps remind each booking at most once.
func (s *Sweeper) sendReminders(ctx context.Context) (int, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	lead := time.Duration(cfg.ReminderLeadHours) * time.Hour
	windowStart := s.now().Add(lead).Truncate(time.Hour)
	windowEnd := windowStart.Add(time.Hour)

	upcoming, err := s.bookingRepo.GetConfirmedInWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range upcoming {
		if err := s.remindOne(ctx, b); err != nil {
			// One broken booking must not starve the rest of the window.
			logger.Errorf("Reminder for booking %d failed: %v", b.ID, err)
			continue
		}
		sent++
		metrics.RemindersSentTotal.Inc()
	}

	return sent, nil
}

func (s *Sweeper) remindOne(ctx context.Context, b booking.BookingWithDetails) error {
	_, err := s.notificationRepo.Create(ctx, b.UserID, &b.ID,
		notification.TypeReminder,
		"Upcoming lesson",
		b.LessonTitle+" on "+lesson.FormatDate(b.ScheduledDate)+" at "+b.StartTime,
	)
	if err != nil {
		if errors.Is(err, notification.ErrDuplicateReminder) {
			return nil
		}
		return err
	}

	if err := s.emailService.SendBookingReminder(ctx, b.UserEmail, b.UserName,
		b.LessonTitle, lesson.FormatDate(b.ScheduledDate), b.StartTime); err != nil {
		// Marker already written; the email queue owns retries from here.
		logger.Warnf("Reminder email for booking %d failed to queue: %v", b.ID, err)
	}

	return nil
}

func (s *Sweeper) completePast(ctx context.Context) (int64, error) {
	completed, err := s.bookingRepo.CompletePastConfirmed(ctx, s.now())
	if err != nil {
		return 0, err
	}

	metrics.BookingsCompletedTotal.Add(float64(completed))
	return completed, nil
}
