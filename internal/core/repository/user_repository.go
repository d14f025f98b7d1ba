package repository

import (
	"context"

	"github.com/Yossy4131/LT/internal/core/domain"
)

type UserRepository interface {
	// Create inserts the user and sets user.ID. A taken username yields ErrDuplicate.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
