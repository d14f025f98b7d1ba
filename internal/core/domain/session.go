package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated part of a session. A session either carries a
// complete Identity or none at all.
type Identity struct {
	UserID      int64
	Username    string
	DisplayName string
	LoginTime   time.Time
}

type Session struct {
	ID        string
	Identity  *Identity
	CSRFToken string // empty until issued
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewSession(lifetime time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
	}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Identity != nil
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// User returns the identity fields as a User, or nil for an anonymous session.
func (s *Session) User() *User {
	if !s.IsAuthenticated() {
		return nil
	}
	return &User{
		ID:          s.Identity.UserID,
		Username:    s.Identity.Username,
		DisplayName: s.Identity.DisplayName,
	}
}
