package service

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_StartNew(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	session, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, env.sessions.CurrentUser(session))
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	stored, err := sessionsRepo(env).FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, stored.ID)
}

func TestSessionManager_StartResumes(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	first, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)

	again, err := env.sessions.Start(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestSessionManager_StartReplacesUnknownAndExpired(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	unknown, err := env.sessions.Start(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.NotEqual(t, "does-not-exist", unknown.ID)

	expired := domain.NewSession(-time.Minute)
	require.NoError(t, sessionsRepo(env).Create(ctx, expired))

	fresh, err := env.sessions.Start(ctx, expired.ID)
	require.NoError(t, err)
	assert.NotEqual(t, expired.ID, fresh.ID)

	_, err = sessionsRepo(env).FindByID(ctx, expired.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionManager_StartPersistenceFailure(t *testing.T) {
	env := setupTestEnv(t)
	sessions := NewSessionManager(failingSessionRepo{}, time.Hour, env.log)

	_, err := sessions.Start(context.Background(), "some-id")
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = sessions.Start(context.Background(), "")
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSessionManager_DefaultLifetime(t *testing.T) {
	env := setupTestEnv(t)
	sessions := NewSessionManager(sessionsRepo(env), 0, env.log)

	assert.Equal(t, DefaultSessionLifetime, sessions.Lifetime())
}

func TestSessionManager_Establish(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	anonymous, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)

	session, err := env.sessions.Establish(ctx, anonymous, alice)
	require.NoError(t, err)
	assert.NotEqual(t, anonymous.ID, session.ID)
	assert.True(t, env.sessions.IsAuthenticated(session))
	assert.NoError(t, env.sessions.RequireAuthenticated(session))

	current := env.sessions.CurrentUser(session)
	require.NotNil(t, current)
	assert.Equal(t, alice.ID, current.ID)
	assert.Equal(t, alice.Username, current.Username)
	assert.Equal(t, alice.DisplayName, current.DisplayName)

	_, err = env.sessions.Establish(ctx, session, nil)
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestSessionManager_RequireAuthenticated(t *testing.T) {
	env := setupTestEnv(t)

	anonymous, err := env.sessions.Start(context.Background(), "")
	require.NoError(t, err)

	assert.ErrorIs(t, env.sessions.RequireAuthenticated(anonymous), ErrAuthenticationRequired)
	assert.ErrorIs(t, env.sessions.RequireAuthenticated(nil), ErrAuthenticationRequired)
	assert.False(t, env.sessions.IsAuthenticated(nil))
}

func TestSessionManager_IssueCSRFToken(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	session, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)

	token, err := env.sessions.IssueCSRFToken(ctx, session)
	require.NoError(t, err)
	assert.Len(t, token, 64)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	again, err := env.sessions.IssueCSRFToken(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	reloaded, err := env.sessions.Start(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, token, reloaded.CSRFToken)
}

func TestSessionManager_IssueCSRFTokenConverges(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	session, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)
	stale := *session

	first, err := env.sessions.IssueCSRFToken(ctx, session)
	require.NoError(t, err)

	second, err := env.sessions.IssueCSRFToken(ctx, &stale)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSessionManager_ValidateCSRFToken(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	withoutToken, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)

	withToken, err := env.sessions.Start(ctx, "")
	require.NoError(t, err)
	token, err := env.sessions.IssueCSRFToken(ctx, withToken)
	require.NoError(t, err)

	tests := []struct {
		name      string
		session   *domain.Session
		submitted string
		want      bool
	}{
		{"matching token", withToken, token, true},
		{"wrong token", withToken, token[:63] + "x", false},
		{"empty submission", withToken, "", false},
		{"prefix only", withToken, token[:32], false},
		{"no token issued", withoutToken, "", false},
		{"no token issued with guess", withoutToken, token, false},
		{"no session", nil, token, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.sessions.ValidateCSRFToken(tt.session, tt.submitted))
		})
	}
}

func TestSessionManager_Destroy(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	alice := env.register(t, "alice")

	session, err := env.sessions.Establish(ctx, nil, alice)
	require.NoError(t, err)

	next, err := env.sessions.Destroy(ctx, session)
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, next.ID)
	assert.False(t, next.IsAuthenticated())

	resumed, err := env.sessions.Start(ctx, session.ID)
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, resumed.ID)
	assert.False(t, resumed.IsAuthenticated())
}

func TestSessionManager_PurgeExpiredLogsFailure(t *testing.T) {
	env := setupTestEnv(t)
	sessions := NewSessionManager(failingSessionRepo{}, time.Hour, env.log)

	sessions.PurgeExpired(context.Background())

	require.NotNil(t, env.hook.LastEntry())
	assert.Equal(t, "failed to purge expired sessions", env.hook.LastEntry().Message)
}
