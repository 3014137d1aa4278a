package blog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugTaken    = errors.New("slug already in use")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, authorID int, req CreatePostRequest) (*Post, error) {
	query := `
		INSERT INTO blog_posts (title, slug, excerpt, body, author_id, is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, CASE WHEN $6 THEN now() ELSE NULL END)
		RETURNING id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at`

	var post Post
	err := r.db.GetContext(ctx, &post, query,
		req.Title, req.Slug, req.Excerpt, req.Body, authorID, req.Publish)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return &post, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdatePostRequest) (*Post, error) {
	query := `
		UPDATE blog_posts SET
			title        = COALESCE($2, title),
			excerpt      = COALESCE($3, excerpt),
			body         = COALESCE($4, body),
			is_published = COALESCE($5, is_published),
			published_at = CASE
				WHEN $5 IS TRUE AND published_at IS NULL THEN now()
				WHEN $5 IS FALSE THEN NULL
				ELSE published_at
			END,
			updated_at   = now()
		WHERE id = $1
		RETURNING id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at`

	var post Post
	err := r.db.GetContext(ctx, &post, query, id, req.Title, req.Excerpt, req.Body, req.Publish)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Post, error) {
	var post Post
	err := r.db.GetContext(ctx, &post,
		`SELECT id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at
		 FROM blog_posts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post
	err := r.db.GetContext(ctx, &post,
		`SELECT id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at
		 FROM blog_posts WHERE slug = $1 AND is_published = TRUE`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *repository) GetPublished(ctx context.Context, limit, offset int) ([]Post, error) {
	posts := []Post{}
	err := r.db.SelectContext(ctx, &posts,
		`SELECT id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at
		 FROM blog_posts
		 WHERE is_published = TRUE
		 ORDER BY published_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Post, error) {
	posts := []Post{}
	err := r.db.SelectContext(ctx, &posts,
		`SELECT id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at
		 FROM blog_posts
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	return posts, nil
}
