package postgres

import (
	"context"

	"portfolio-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Fetch(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT id, slug, title, description FROM projects ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Description); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	query := `SELECT id, slug, title, description FROM projects WHERE slug = $1`

	var p domain.Project
	err := r.db.QueryRow(ctx, query, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Description)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
