package domain

import "context"

// Post is a blog entry shown on the public site.
type Post struct {
	ID      int64   `json:"id"`
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

type PostRepository interface {
	Fetch(ctx context.Context) ([]Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
}

type PostUsecase interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, slug string) (*Post, error)
}
