package handler

import (
	"net/http"
	"testing"

	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUserPosts(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.loggedInClient(t, "alice")
	bob := env.loggedInClient(t, "bob")

	for _, p := range []struct {
		cl      *testClient
		content string
	}{
		{alice, "a1"}, {bob, "b1"}, {alice, "a2"},
	} {
		w := p.cl.request(t, http.MethodPost, "/posts", dto.CreatePostRequest{Content: p.content})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := bob.request(t, http.MethodGet, "/users/alice/posts", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.UserPostsResponse](t, w)
	assert.Equal(t, "alice", resp.User.Username)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "a2", resp.Items[0].Content)
	assert.Equal(t, "a1", resp.Items[1].Content)
	assert.Equal(t, 2, resp.Pagination.Total)
}

func TestListUserPosts_UnknownUser(t *testing.T) {
	env := setupTestEnv(t)
	cl := env.newClient(t)

	w := cl.request(t, http.MethodGet, "/users/nobody/posts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfile(t *testing.T) {
	env := setupTestEnv(t)
	cl := env.loggedInClient(t, "alice")

	for _, content := range []string{"first", "second"} {
		require.Equal(t, http.StatusCreated, cl.request(t, http.MethodPost, "/posts", dto.CreatePostRequest{Content: content}).Code)
	}

	w := cl.request(t, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.ProfileResponse](t, w)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "Display alice", resp.User.DisplayName)
	assert.Equal(t, 2, resp.PostCount)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "second", resp.Posts[0].Content)
}

func TestProfile_RequiresLogin(t *testing.T) {
	env := setupTestEnv(t)
	cl := env.newClient(t)

	w := cl.request(t, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}
