package domain

import "context"

// Project is a portfolio entry shown on the public site.
type Project struct {
	ID          int64   `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type ProjectRepository interface {
	Fetch(ctx context.Context) ([]Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
}

type ProjectUsecase interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, slug string) (*Project, error)
}
