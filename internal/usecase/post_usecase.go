package usecase

import (
	"context"
	"errors"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

type postUsecase struct {
	posts domain.PostRepository
}

func NewPostUsecase(posts domain.PostRepository) domain.PostUsecase {
	return &postUsecase{posts: posts}
}

func (u *postUsecase) List(ctx context.Context) ([]domain.Post, error) {
	items, err := u.posts.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *postUsecase) Get(ctx context.Context, slug string) (*domain.Post, error) {
	p, err := u.posts.GetBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("post not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}
