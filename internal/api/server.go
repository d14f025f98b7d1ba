package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Yossy4131/LT/internal/api/docs"
	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/api/handler"
	"github.com/Yossy4131/LT/internal/api/middleware"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/Yossy4131/LT/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    *logrus.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	log *logrus.Logger,
	authService *service.AuthService,
	sessionManager *service.SessionManager,
	postService *service.PostService,
	tokenCodec *service.SessionTokenCodec,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	sessions := middleware.NewSessions(sessionManager, tokenCodec, cfg.SessionCookieName, cfg.TLSEnabled(), log)

	// Global middleware
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionManager, sessions, cfg.SiteName)
	postHandler := handler.NewPostHandler(postService, sessionManager, cfg.FeedPageSize)
	userHandler := handler.NewUserHandler(authService, postService, sessionManager, cfg.FeedPageSize)

	// Stateless routes
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status: "ok",
			Time:   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))

	// Everything below runs with a session and CSRF checks on POST
	app := router.Group("")
	app.Use(sessions.Load())
	app.Use(middleware.CSRFMiddleware(sessionManager, log))

	requireAuth := middleware.RequireAuth(sessionManager)

	auth := app.Group("/auth")
	{
		auth.GET("/session", authHandler.Session)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	posts := app.Group("/posts")
	{
		posts.GET("", postHandler.ListPosts)
		posts.POST("", requireAuth, postHandler.CreatePost)
	}

	app.GET("/users/:username/posts", userHandler.ListUserPosts)
	app.GET("/me", requireAuth, userHandler.Profile)

	return &Server{
		router: router,
		config: cfg,
		log:    log,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.Address()

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.TLSEnabled() {
		s.log.Infof("Starting HTTPS server on %s", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.log.Infof("Starting HTTP server on %s", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
