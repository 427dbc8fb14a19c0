package postgres

import (
	"context"

	"portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Fetch(ctx context.Context) ([]domain.Post, error) {
	query := `SELECT id, slug, title, content FROM posts ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Content); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	query := `SELECT id, slug, title, content FROM posts WHERE slug = $1`

	var p domain.Post
	err := r.db.QueryRow(ctx, query, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Content)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
