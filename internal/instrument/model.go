package instrument

import "time"

type Instrument struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateInstrumentRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}
