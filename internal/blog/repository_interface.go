package blog

import "context"

type Repository interface {
	Create(ctx context.Context, authorID int, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, id int, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	GetPublished(ctx context.Context, limit, offset int) ([]Post, error)
	GetAll(ctx context.Context) ([]Post, error)
}
