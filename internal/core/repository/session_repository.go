package repository

import (
	"context"

	"github.com/Yossy4131/LT/internal/core/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	// UpdateCSRFToken stores the token only if none was issued yet and reports
	// whether the row was changed.
	UpdateCSRFToken(ctx context.Context, id, token string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}
