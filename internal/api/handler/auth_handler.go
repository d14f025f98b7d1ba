package handler

import (
	"net/http"

	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/api/middleware"
	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/Yossy4131/LT/internal/core/validation"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *service.SessionManager
	cookies     *middleware.Sessions
	siteName    string
}

func NewAuthHandler(authService *service.AuthService, sessions *service.SessionManager, cookies *middleware.Sessions, siteName string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookies:     cookies,
		siteName:    siteName,
	}
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	h.respondSession(c, http.StatusOK, middleware.GetSession(c))
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bind(c, &req) {
		return
	}

	if err := validation.PasswordConfirmation(req.Password, req.ConfirmPassword); err != nil {
		_ = c.Error(service.NewValidationError(err))
		return
	}

	id, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		ID:       id,
		Username: req.Username,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), middleware.GetSession(c), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.cookies.Replace(c, session); err != nil {
		_ = c.Error(err)
		return
	}
	h.respondSession(c, http.StatusOK, session)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session, err := h.authService.Logout(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.cookies.Replace(c, session); err != nil {
		_ = c.Error(err)
		return
	}
	h.respondSession(c, http.StatusOK, session)
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, session *domain.Session) {
	token, err := h.sessions.IssueCSRFToken(c.Request.Context(), session)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(status, dto.SessionResponse{
		Authenticated: h.sessions.IsAuthenticated(session),
		User:          dto.ToUserResponse(h.sessions.CurrentUser(session)),
		CSRFToken:     token,
		SiteName:      h.siteName,
	})
}

// bind decodes a JSON or form body; on failure it records a validation error.
func bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		_ = c.Error(service.NewServiceError(service.KindValidation, "malformed request body", err))
		return false
	}
	return true
}
