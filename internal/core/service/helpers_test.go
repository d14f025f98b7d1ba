package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
	"github.com/Yossy4131/LT/internal/infrastructure/sqlstore"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("database is locked")

// testEnv wires the services over an in-memory store.
type testEnv struct {
	db       *sqlstore.DB
	log      *logrus.Logger
	hook     *test.Hook
	sessions *SessionManager
	auth     *AuthService
	posts    *PostService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlstore.New(sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log, hook := test.NewNullLogger()
	sessions := NewSessionManager(sqlstore.NewSessionRepository(db), time.Hour, log)

	return &testEnv{
		db:       db,
		log:      log,
		hook:     hook,
		sessions: sessions,
		auth:     NewAuthService(sqlstore.NewUserRepository(db), sessions, log),
		posts:    NewPostService(sqlstore.NewPostRepository(db), log),
	}
}

func (env *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()

	ctx := context.Background()
	_, err := env.auth.Register(ctx, username, "secret123", "Display "+username)
	require.NoError(t, err)

	user, err := env.auth.FindUser(ctx, username)
	require.NoError(t, err)
	return user
}

type failingUserRepo struct{}

func (failingUserRepo) Create(context.Context, *domain.User) error { return errStoreDown }
func (failingUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, errStoreDown
}
func (failingUserRepo) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, errStoreDown
}
func (failingUserRepo) List(context.Context) ([]*domain.User, error) { return nil, errStoreDown }

type failingPostRepo struct{}

func (failingPostRepo) Create(context.Context, *domain.Post) error { return errStoreDown }
func (failingPostRepo) List(context.Context, repository.PostFilter) ([]*domain.PostWithAuthor, error) {
	return nil, errStoreDown
}
func (failingPostRepo) Count(context.Context, repository.PostFilter) (int, error) {
	return 0, errStoreDown
}

type failingSessionRepo struct{}

func (failingSessionRepo) Create(context.Context, *domain.Session) error { return errStoreDown }
func (failingSessionRepo) FindByID(context.Context, string) (*domain.Session, error) {
	return nil, errStoreDown
}
func (failingSessionRepo) UpdateCSRFToken(context.Context, string, string) (bool, error) {
	return false, errStoreDown
}
func (failingSessionRepo) Delete(context.Context, string) error { return errStoreDown }
func (failingSessionRepo) DeleteExpired(context.Context) error { return errStoreDown }
