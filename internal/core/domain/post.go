package domain

import "time"

type Post struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func NewPost(userID int64, content string, createdAt time.Time) *Post {
	return &Post{
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt.UTC(),
	}
}

// PostWithAuthor is a feed row: the post joined with its author's public fields.
type PostWithAuthor struct {
	Post
	Username    string `db:"username"`
	DisplayName string `db:"display_name"`
}
