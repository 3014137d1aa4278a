package contact

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrEnquiryNotFound = errors.New("enquiry not found")

type Repository interface {
	Create(ctx context.Context, req CreateEnquiryRequest) (*Enquiry, error)
	GetByID(ctx context.Context, id int) (*Enquiry, error)
	GetAll(ctx context.Context, status string) ([]Enquiry, error)
	MarkResponded(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateEnquiryRequest) (*Enquiry, error) {
	query := `
		INSERT INTO enquiries (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, subject, message, status, created_at`

	var enquiry Enquiry
	err := r.db.GetContext(ctx, &enquiry, query, req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}

	return &enquiry, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Enquiry, error) {
	var enquiry Enquiry
	err := r.db.GetContext(ctx, &enquiry,
		`SELECT id, name, email, subject, message, status, created_at
		 FROM enquiries WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &enquiry, nil
}

func (r *repository) GetAll(ctx context.Context, status string) ([]Enquiry, error) {
	enquiries := []Enquiry{}

	query := `SELECT id, name, email, subject, message, status, created_at
	          FROM enquiries`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &enquiries, query, args...); err != nil {
		return nil, err
	}

	return enquiries, nil
}

func (r *repository) MarkResponded(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE enquiries SET status = $2 WHERE id = $1`, id, StatusResponded)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEnquiryNotFound
	}

	return nil
}
