package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (username, password_hash, display_name, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := r.db.Rebind(`
		SELECT id, username, password_hash, display_name, created_at
		FROM users
		WHERE username = ?
	`)
	return r.get(ctx, query, username)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := r.db.Rebind(`
		SELECT id, username, password_hash, display_name, created_at
		FROM users
		WHERE id = ?
	`)
	return r.get(ctx, query, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, created_at
		FROM users
		ORDER BY username
	`
	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
