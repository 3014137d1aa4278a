package newsletter

import "time"

type Subscriber struct {
	ID               int       `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	UnsubscribeToken string    `json:"-" db:"unsubscribe_token"`
	IsSubscribed     bool      `json:"is_subscribed" db:"is_subscribed"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Body    string `json:"body" binding:"required"`
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}
