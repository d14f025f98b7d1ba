package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/api/middleware"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/Yossy4131/LT/internal/infrastructure/sqlstore"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const (
	testCookieName = "sns_session"
	testSecret     = "0123456789abcdef0123456789abcdef"
	testPageSize   = 20
)

// testEnv holds all test dependencies
type testEnv struct {
	db       *sqlstore.DB
	router   *gin.Engine
	log      *logrus.Logger
	sessions *service.SessionManager
	auth     *service.AuthService
	posts    *service.PostService
	codec    *service.SessionTokenCodec
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlstore.New(sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log, _ := test.NewNullLogger()

	sessions := service.NewSessionManager(sqlstore.NewSessionRepository(db), time.Hour, log)
	auth := service.NewAuthService(sqlstore.NewUserRepository(db), sessions, log)
	posts := service.NewPostService(sqlstore.NewPostRepository(db), log)
	codec, err := service.NewSessionTokenCodec(testSecret, "HS256")
	require.NoError(t, err)

	cookies := middleware.NewSessions(sessions, codec, testCookieName, false, log)

	authHandler := NewAuthHandler(auth, sessions, cookies, "Test SNS")
	postHandler := NewPostHandler(posts, sessions, testPageSize)
	userHandler := NewUserHandler(auth, posts, sessions, testPageSize)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(cookies.Load())
	router.Use(middleware.CSRFMiddleware(sessions, log))

	requireAuth := middleware.RequireAuth(sessions)
	router.GET("/auth/session", authHandler.Session)
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)
	router.GET("/posts", postHandler.ListPosts)
	router.POST("/posts", requireAuth, postHandler.CreatePost)
	router.GET("/users/:username/posts", userHandler.ListUserPosts)
	router.GET("/me", requireAuth, userHandler.Profile)

	return &testEnv{
		db:       db,
		router:   router,
		log:      log,
		sessions: sessions,
		auth:     auth,
		posts:    posts,
		codec:    codec,
	}
}

// testClient plays a browser: it keeps the session cookie and the last CSRF
// token it was handed.
type testClient struct {
	env    *testEnv
	cookie *http.Cookie
	csrf   string
}

// newClient opens a session and picks up its CSRF token
func (env *testEnv) newClient(t *testing.T) *testClient {
	t.Helper()

	cl := &testClient{env: env}
	cl.refreshSession(t)
	return cl
}

func (cl *testClient) refreshSession(t *testing.T) dto.SessionResponse {
	t.Helper()

	w := cl.request(t, http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dto.SessionResponse](t, w)
	cl.csrf = resp.CSRFToken
	return resp
}

// request sends body as JSON along with the cookie and CSRF header
func (cl *testClient) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.csrf != "" && method != http.MethodGet {
		req.Header.Set(middleware.CSRFHeader, cl.csrf)
	}

	return cl.send(req)
}

// postForm sends an urlencoded form; the CSRF token travels in the form itself
func (cl *testClient) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return cl.send(req)
}

func (cl *testClient) send(req *http.Request) *httptest.ResponseRecorder {
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}

	w := httptest.NewRecorder()
	cl.env.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			cl.cookie = c
		}
	}
	return w
}

// sessionID resolves the client's cookie to the session id it carries
func (cl *testClient) sessionID(t *testing.T) string {
	t.Helper()

	require.NotNil(t, cl.cookie)
	id, err := cl.env.codec.Decode(cl.cookie.Value)
	require.NoError(t, err)
	return id
}

func (cl *testClient) register(t *testing.T, username, password, displayName string) *httptest.ResponseRecorder {
	t.Helper()

	return cl.request(t, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
		DisplayName:     displayName,
	})
}

func (cl *testClient) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	w := cl.request(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	})
	if w.Code == http.StatusOK {
		cl.csrf = decode[dto.SessionResponse](t, w).CSRFToken
	}
	return w
}

// loggedInClient registers username and returns a client logged in as it
func (env *testEnv) loggedInClient(t *testing.T, username string) *testClient {
	t.Helper()

	cl := env.newClient(t)
	w := cl.register(t, username, "secret123", "Display "+username)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = cl.login(t, username, "secret123")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return cl
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
