package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
	"github.com/Yossy4131/LT/internal/core/validation"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// timingDummyHash is compared against when the username does not exist, so an
// unknown user costs as much as a wrong password.
func timingDummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("sns-dummy-password"), BcryptCost)
	})
	return dummyHash
}

type AuthService struct {
	userRepo repository.UserRepository
	sessions *SessionManager
	log      *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, sessions *SessionManager, log *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		log:      log,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a user and returns its id. The display name is stored trimmed.
func (s *AuthService) Register(ctx context.Context, username, password, displayName string) (int64, error) {
	if err := validation.Username(username); err != nil {
		return 0, NewValidationError(err)
	}
	if err := validation.Password(password); err != nil {
		return 0, NewValidationError(err)
	}
	if err := validation.DisplayName(displayName); err != nil {
		return 0, NewValidationError(err)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return 0, persistenceError(s.log, "register", err)
	}

	user := domain.NewUser(username, hash, strings.TrimSpace(displayName))
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, NewServiceError(KindDuplicateUsername, ErrDuplicateUsername.Message, err)
		}
		return 0, persistenceError(s.log, "register", err)
	}

	s.log.Infof("User registered: %s", user.Username)
	return user.ID, nil
}

// Verify returns the user when the password matches and (nil, nil) when the
// username is unknown or the password is wrong.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(timingDummyHash(), []byte(password))
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError(s.log, "verify", err)
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Login verifies the credentials and moves the session to the authenticated
// state. The returned session replaces the one passed in.
func (s *AuthService) Login(ctx context.Context, session *domain.Session, username, password string) (*domain.Session, error) {
	user, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.WithField("username", username).Warn("failed login attempt")
		return nil, ErrAuthenticationFailure
	}

	s.sessions.PurgeExpired(ctx)

	next, err := s.sessions.Establish(ctx, session, user)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return next, nil
}

func (s *AuthService) Logout(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if user := session.User(); user != nil {
		s.log.Infof("User logged out: %s", user.Username)
	}
	return s.sessions.Destroy(ctx, session)
}

func (s *AuthService) FindUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewServiceError(KindNotFound, fmt.Sprintf("user %q not found", username), err)
	}
	if err != nil {
		return nil, persistenceError(s.log, "find user", err)
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, persistenceError(s.log, "list users", err)
	}
	return users, nil
}
