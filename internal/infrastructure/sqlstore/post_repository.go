package sqlstore

import (
	"context"
	"fmt"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
)

type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := r.db.Rebind(`
		INSERT INTO posts (user_id, content, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		post.UserID,
		post.Content,
		post.CreatedAt,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, filter repository.PostFilter) ([]*domain.PostWithAuthor, error) {
	query := `
		SELECT p.id, p.user_id, p.content, p.created_at, u.username, u.display_name
		FROM posts p
		JOIN users u ON p.user_id = u.id
		WHERE 1=1
	`
	args := []interface{}{}

	query, args = applyAuthor(query, args, filter.AuthorID)
	query += " ORDER BY p.created_at DESC, p.id DESC"
	query, args = applyPagination(query, args, filter.Limit, filter.Offset)

	posts := []*domain.PostWithAuthor{}
	if err := r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter repository.PostFilter) (int, error) {
	query := `SELECT COUNT(*) FROM posts p WHERE 1=1`
	args := []interface{}{}

	query, args = applyAuthor(query, args, filter.AuthorID)

	var count int
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func applyAuthor(query string, args []interface{}, authorID *int64) (string, []interface{}) {
	if authorID != nil {
		query += " AND p.user_id = ?"
		args = append(args, *authorID)
	}
	return query, args
}
