package newsletter

import "context"

type Repository interface {
	// Subscribe inserts a new subscriber, or re-activates an existing
	// one that previously unsubscribed. It reports whether the call
	// created or re-activated a subscription.
	Subscribe(ctx context.Context, email, token string) (*Subscriber, bool, error)
	UnsubscribeByToken(ctx context.Context, token string) error
	GetActiveSubscribers(ctx context.Context) ([]Subscriber, error)
}
