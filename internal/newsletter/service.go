package newsletter

import (
	"context"

	"github.com/google/uuid"

	"tuneslot/internal/email"
	"tuneslot/internal/logger"
	"tuneslot/internal/metrics"
)

type Service interface {
	Subscribe(ctx context.Context, email string) (*Subscriber, error)
	Unsubscribe(ctx context.Context, token string) error
	Broadcast(ctx context.Context, req BroadcastRequest) (int, error)
}

type service struct {
	repo         Repository
	emailService *email.Service
}

func NewService(repo Repository, emailService *email.Service) Service {
	return &service{repo: repo, emailService: emailService}
}

func (s *service) Subscribe(ctx context.Context, address string) (*Subscriber, error) {
	subscriber, created, err := s.repo.Subscribe(ctx, address, uuid.NewString())
	if err != nil {
		return nil, err
	}

	if created {
		metrics.NewsletterSubscribersTotal.Inc()
	}

	return subscriber, nil
}

func (s *service) Unsubscribe(ctx context.Context, token string) error {
	return s.repo.UnsubscribeByToken(ctx, token)
}

// Broadcast queues the newsletter for every active subscriber and
// returns the recipient count. A failed enqueue for one subscriber is
// logged and does not stop the rest.
func (s *service) Broadcast(ctx context.Context, req BroadcastRequest) (int, error) {
	subscribers, err := s.repo.GetActiveSubscribers(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sub := range subscribers {
		if err := s.emailService.SendNewsletter(ctx, sub.Email, req.Subject, req.Body); err != nil {
			logger.Warnf("Failed to queue newsletter for %s: %v", sub.Email, err)
			continue
		}
		sent++
	}

	return sent, nil
}
