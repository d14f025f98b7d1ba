package service

import (
	"context"
	"strings"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
	"github.com/Yossy4131/LT/internal/core/validation"
	"github.com/sirupsen/logrus"
)

const DefaultPageSize = 20

type PostService struct {
	repo repository.PostRepository
	log  *logrus.Logger
	now  func() time.Time
}

func NewPostService(repo repository.PostRepository, log *logrus.Logger) *PostService {
	return &PostService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Create stores the trimmed content under authorID and returns the new post id.
func (s *PostService) Create(ctx context.Context, authorID int64, content string) (int64, error) {
	if err := validation.PostContent(content); err != nil {
		return 0, NewValidationError(err)
	}

	post := domain.NewPost(authorID, strings.TrimSpace(content), s.now())
	if err := s.repo.Create(ctx, post); err != nil {
		return 0, persistenceError(s.log, "create post", err)
	}

	s.log.Debugf("Post %d created by user %d", post.ID, authorID)
	return post.ID, nil
}

// List returns the global feed, newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]*domain.PostWithAuthor, error) {
	return s.list(ctx, repository.PostFilter{Limit: limit, Offset: offset})
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*domain.PostWithAuthor, error) {
	return s.list(ctx, repository.PostFilter{AuthorID: &authorID, Limit: limit, Offset: offset})
}

// Count returns the number of posts, or 0 when the store cannot answer.
func (s *PostService) Count(ctx context.Context) int {
	return s.count(ctx, repository.PostFilter{})
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID int64) int {
	return s.count(ctx, repository.PostFilter{AuthorID: &authorID})
}

func (s *PostService) list(ctx context.Context, filter repository.PostFilter) ([]*domain.PostWithAuthor, error) {
	if err := validation.Pagination(filter.Limit, filter.Offset); err != nil {
		return nil, NewValidationError(err)
	}

	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, persistenceError(s.log, "list posts", err)
	}
	return posts, nil
}

func (s *PostService) count(ctx context.Context, filter repository.PostFilter) int {
	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"operation": "count posts",
			"error":     err,
		}).Error("storage operation failed")
		return 0
	}
	return count
}
