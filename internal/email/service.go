package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"tuneslot/internal/logger"
	"tuneslot/internal/metrics"
)

const (
	queueKey  = "emails"
	failedKey = "emails:failed"

	maxTries = 3
)

type Job struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Type    string    `json:"type"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

// NewWithClient is used by tests to inject a mock redis client.
func NewWithClient(client *redis.Client, fromEmail, fromName string) *Service {
	return &Service{
		redis:    client,
		from:     fromEmail,
		fromName: fromName,
	}
}

// Send enqueues an email. Delivery happens in the background worker; callers
// treat a successful enqueue as fire-and-forget.
func (s *Service) Send(ctx context.Context, to, name, subject, body, emailType string) error {
	job := Job{
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Type:    emailType,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		metrics.RecordEmail(emailType, "queue_failed")
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

// Start runs the delivery worker until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, lessonTitle, date, startTime string) error {
	subject := "Lesson Booked - " + lessonTitle
	body := fmt.Sprintf(`Hi %s,

Your lesson is booked!

Lesson: %s
Date: %s
Time: %s

See you at the studio!

- %s`, name, lessonTitle, date, startTime, s.fromName)

	return s.Send(ctx, to, name, subject, body, "booking_confirmation")
}

func (s *Service) SendBookingReminder(ctx context.Context, to, name, lessonTitle, date, startTime string) error {
	subject := "Reminder: " + lessonTitle
	body := fmt.Sprintf(`Hi %s,

This is a reminder about your upcoming lesson:

Lesson: %s
Date: %s
Time: %s

See you soon!

- %s`, name, lessonTitle, date, startTime, s.fromName)

	return s.Send(ctx, to, name, subject, body, "booking_reminder")
}

func (s *Service) SendBookingCancellation(ctx context.Context, to, name, lessonTitle, date, startTime string) error {
	subject := "Lesson Cancelled - " + lessonTitle
	body := fmt.Sprintf(`Hi %s,

Your lesson has been cancelled:

Lesson: %s
Date: %s
Time: %s

- %s`, name, lessonTitle, date, startTime, s.fromName)

	return s.Send(ctx, to, name, subject, body, "booking_cancellation")
}

func (s *Service) SendOrderConfirmation(ctx context.Context, to, name, reference string, totalCents int64) error {
	subject := "Order Received - " + reference
	body := fmt.Sprintf(`Hi %s,

Thanks for your order!

Reference: %s
Total: $%.2f

We'll let you know when it ships.

- %s`, name, reference, float64(totalCents)/100, s.fromName)

	return s.Send(ctx, to, name, subject, body, "order_confirmation")
}

func (s *Service) SendNewsletter(ctx context.Context, to, subject, body string) error {
	return s.Send(ctx, to, "", subject, body, "newsletter")
}
