package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSessionLifetime = time.Hour
	csrfTokenBytes         = 32
)

// SessionManager drives the anonymous -> authenticated -> anonymous lifecycle
// of a session and owns its CSRF token.
type SessionManager struct {
	repo     repository.SessionRepository
	lifetime time.Duration
	log      *logrus.Logger
}

func NewSessionManager(repo repository.SessionRepository, lifetime time.Duration, log *logrus.Logger) *SessionManager {
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}
	return &SessionManager{
		repo:     repo,
		lifetime: lifetime,
		log:      log,
	}
}

func (m *SessionManager) Lifetime() time.Duration {
	return m.lifetime
}

// Start resumes the session with the given id, or persists a new anonymous one
// when the id is empty, unknown or expired.
func (m *SessionManager) Start(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		session, err := m.repo.FindByID(ctx, id)
		switch {
		case err == nil && !session.IsExpired():
			return session, nil
		case err == nil:
			if err := m.discard(ctx, session.ID); err != nil {
				m.log.WithError(err).Warn("failed to remove expired session")
			}
		case !errors.Is(err, repository.ErrNotFound):
			return nil, persistenceError(m.log, "load session", err)
		}
	}
	return m.create(ctx, nil, "")
}

// Establish authenticates the session for user. The old id is dropped and a
// new one issued together with a fresh CSRF token.
func (m *SessionManager) Establish(ctx context.Context, session *domain.Session, user *domain.User) (*domain.Session, error) {
	if user == nil {
		return nil, ErrAuthenticationFailure
	}

	if session != nil {
		if err := m.discard(ctx, session.ID); err != nil {
			return nil, persistenceError(m.log, "rotate session", err)
		}
	}

	token, err := newCSRFToken()
	if err != nil {
		return nil, persistenceError(m.log, "issue csrf token", err)
	}

	identity := &domain.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		LoginTime:   time.Now().UTC(),
	}
	return m.create(ctx, identity, token)
}

// Destroy ends the session and hands back a fresh anonymous one.
func (m *SessionManager) Destroy(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session != nil {
		if err := m.discard(ctx, session.ID); err != nil {
			return nil, persistenceError(m.log, "destroy session", err)
		}
	}
	return m.create(ctx, nil, "")
}

func (m *SessionManager) IsAuthenticated(session *domain.Session) bool {
	return session.IsAuthenticated()
}

func (m *SessionManager) RequireAuthenticated(session *domain.Session) error {
	if !session.IsAuthenticated() {
		return ErrAuthenticationRequired
	}
	return nil
}

func (m *SessionManager) CurrentUser(session *domain.Session) *domain.User {
	return session.User()
}

// IssueCSRFToken returns the session's token, generating and storing it on
// first use. Concurrent first calls converge on whichever token was stored.
func (m *SessionManager) IssueCSRFToken(ctx context.Context, session *domain.Session) (string, error) {
	if session.CSRFToken != "" {
		return session.CSRFToken, nil
	}

	token, err := newCSRFToken()
	if err != nil {
		return "", persistenceError(m.log, "issue csrf token", err)
	}

	updated, err := m.repo.UpdateCSRFToken(ctx, session.ID, token)
	if err != nil {
		return "", persistenceError(m.log, "issue csrf token", err)
	}

	if !updated {
		stored, err := m.repo.FindByID(ctx, session.ID)
		if err != nil {
			return "", persistenceError(m.log, "issue csrf token", err)
		}
		if stored.CSRFToken == "" {
			return "", persistenceError(m.log, "issue csrf token", fmt.Errorf("session %s has no token after update", session.ID))
		}
		token = stored.CSRFToken
	}

	session.CSRFToken = token
	return token, nil
}

func (m *SessionManager) ValidateCSRFToken(session *domain.Session, submitted string) bool {
	if session == nil || session.CSRFToken == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(session.CSRFToken), []byte(submitted)) == 1
}

// PurgeExpired is best effort; failures are only logged.
func (m *SessionManager) PurgeExpired(ctx context.Context) {
	if err := m.repo.DeleteExpired(ctx); err != nil {
		m.log.WithError(err).Warn("failed to purge expired sessions")
	}
}

func (m *SessionManager) create(ctx context.Context, identity *domain.Identity, csrfToken string) (*domain.Session, error) {
	session := domain.NewSession(m.lifetime)
	session.Identity = identity
	session.CSRFToken = csrfToken

	if err := m.repo.Create(ctx, session); err != nil {
		return nil, persistenceError(m.log, "create session", err)
	}
	return session, nil
}

func (m *SessionManager) discard(ctx context.Context, id string) error {
	if err := m.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
