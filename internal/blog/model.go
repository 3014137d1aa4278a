package blog

import "time"

type Post struct {
	ID          int        `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	Body        string     `json:"body" db:"body"`
	AuthorID    int        `json:"author_id" db:"author_id"`
	IsPublished bool       `json:"is_published" db:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=200"`
	Slug    string `json:"slug" binding:"required,min=3,max=200"`
	Excerpt string `json:"excerpt" binding:"max=500"`
	Body    string `json:"body" binding:"required"`
	Publish bool   `json:"publish"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=3,max=200"`
	Excerpt *string `json:"excerpt" binding:"omitempty,max=500"`
	Body    *string `json:"body"`
	Publish *bool   `json:"publish"`
}
