package repository

import (
	"context"

	"github.com/Yossy4131/LT/internal/core/domain"
)

type PostFilter struct {
	AuthorID *int64
	Limit    int
	Offset   int
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	// List returns posts newest first (created_at DESC, id DESC).
	List(ctx context.Context, filter PostFilter) ([]*domain.PostWithAuthor, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}
