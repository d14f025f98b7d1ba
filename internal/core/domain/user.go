package domain

import "time"

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"` // bcrypt hashed
	DisplayName  string    `db:"display_name"`
	CreatedAt    time.Time `db:"created_at"`
}

func NewUser(username, hashedPassword, displayName string) *User {
	return &User{
		Username:     username,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}
}
