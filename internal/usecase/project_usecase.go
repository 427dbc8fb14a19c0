package usecase

import (
	"context"
	"errors"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

type projectUsecase struct {
	projects domain.ProjectRepository
}

func NewProjectUsecase(projects domain.ProjectRepository) domain.ProjectUsecase {
	return &projectUsecase{projects: projects}
}

func (u *projectUsecase) List(ctx context.Context) ([]domain.Project, error) {
	items, err := u.projects.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *projectUsecase) Get(ctx context.Context, slug string) (*domain.Project, error) {
	p, err := u.projects.GetBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("project not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}
