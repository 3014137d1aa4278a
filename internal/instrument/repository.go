package instrument

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, name, category string) (*Instrument, error)
	GetByID(ctx context.Context, id int) (*Instrument, error)
	GetAll(ctx context.Context, onlyActive bool) ([]Instrument, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, category string) (*Instrument, error) {
	query := `
		INSERT INTO instruments (name, category)
		VALUES ($1, $2)
		RETURNING id, name, category, is_active, created_at
	`

	var instrument Instrument
	err := r.db.GetContext(ctx, &instrument, query, name, category)
	if err != nil {
		return nil, err
	}

	return &instrument, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Instrument, error) {
	query := `
		SELECT id, name, category, is_active, created_at
		FROM instruments
		WHERE id = $1
	`

	var instrument Instrument
	err := r.db.GetContext(ctx, &instrument, query, id)
	if err != nil {
		return nil, err
	}

	return &instrument, nil
}

func (r *repository) GetAll(ctx context.Context, onlyActive bool) ([]Instrument, error) {
	query := `
		SELECT id, name, category, is_active, created_at
		FROM instruments
	`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	var instruments []Instrument
	err := r.db.SelectContext(ctx, &instruments, query)
	if err != nil {
		return nil, err
	}

	return instruments, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE instruments SET is_active = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, active)
	return err
}
