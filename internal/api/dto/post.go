package dto

import (
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/timefmt"
)

type CreatePostRequest struct {
	Content string `json:"content" form:"content"`
}

type CreatePostResponse struct {
	ID int64 `json:"id"`
}

// PostResponse is a feed entry. Content is returned verbatim; escaping is up to the client.
type PostResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	RelativeTime string    `json:"relative_time"`
}

type PostListResponse struct {
	Items      []PostResponse `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

type UserPostsResponse struct {
	User       UserResponse   `json:"user"`
	Items      []PostResponse `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

type ProfileResponse struct {
	User      UserResponse   `json:"user"`
	PostCount int            `json:"post_count"`
	Posts     []PostResponse `json:"posts"`
}

func ToPostResponses(posts []*domain.PostWithAuthor, now time.Time) []PostResponse {
	items := make([]PostResponse, len(posts))
	for i, p := range posts {
		items[i] = PostResponse{
			ID:           p.ID,
			UserID:       p.UserID,
			Username:     p.Username,
			DisplayName:  p.DisplayName,
			Content:      p.Content,
			CreatedAt:    p.CreatedAt,
			RelativeTime: timefmt.Relative(p.CreatedAt, now),
		}
	}
	return items
}
