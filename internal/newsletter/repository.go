package newsletter

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrTokenNotFound = errors.New("unsubscribe token not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Subscribe(ctx context.Context, email, token string) (*Subscriber, bool, error) {
	// Re-subscribing keeps the original token so previously sent
	// unsubscribe links stay valid.
	query := `
		INSERT INTO newsletter_subscribers (email, unsubscribe_token, is_subscribed)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_subscribed = TRUE
		RETURNING id, email, unsubscribe_token, is_subscribed, created_at,
		          (xmax = 0) AS inserted`

	var row struct {
		Subscriber
		Inserted bool `db:"inserted"`
	}
	if err := r.db.GetContext(ctx, &row, query, email, token); err != nil {
		return nil, false, err
	}

	return &row.Subscriber, row.Inserted, nil
}

func (r *repository) UnsubscribeByToken(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET is_subscribed = FALSE WHERE unsubscribe_token = $1`,
		token)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTokenNotFound
	}

	return nil
}

func (r *repository) GetActiveSubscribers(ctx context.Context) ([]Subscriber, error) {
	subscribers := []Subscriber{}
	err := r.db.SelectContext(ctx, &subscribers,
		`SELECT id, email, unsubscribe_token, is_subscribed, created_at
		 FROM newsletter_subscribers
		 WHERE is_subscribed = TRUE
		 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}

	return subscribers, nil
}
