package handler

import (
	"net/http"
	"time"

	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/api/middleware"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService *service.AuthService
	postService *service.PostService
	sessions    *service.SessionManager
	pageSize    int
	now         func() time.Time
}

func NewUserHandler(authService *service.AuthService, postService *service.PostService, sessions *service.SessionManager, pageSize int) *UserHandler {
	return &UserHandler{
		authService: authService,
		postService: postService,
		sessions:    sessions,
		pageSize:    pageSize,
		now:         time.Now,
	}
}

// ListUserPosts handles GET /users/:username/posts
func (h *UserHandler) ListUserPosts(c *gin.Context) {
	filter, ok := parseListFilter(c, h.pageSize)
	if !ok {
		return
	}

	user, err := h.authService.FindUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	posts, err := h.postService.ListByAuthor(c.Request.Context(), user.ID, filter.Limit, filter.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.UserPostsResponse{
		User:  *dto.ToUserResponse(user),
		Items: dto.ToPostResponses(posts, h.now()),
		Pagination: dto.PaginationInfo{
			Total:  h.postService.CountByAuthor(c.Request.Context(), user.ID),
			Limit:  filter.Limit,
			Offset: filter.Offset,
		},
	})
}

// Profile handles GET /me
func (h *UserHandler) Profile(c *gin.Context) {
	user := h.sessions.CurrentUser(middleware.GetSession(c))
	if user == nil {
		_ = c.Error(service.ErrAuthenticationRequired)
		return
	}

	posts, err := h.postService.ListByAuthor(c.Request.Context(), user.ID, h.pageSize, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		User:      *dto.ToUserResponse(user),
		PostCount: h.postService.CountByAuthor(c.Request.Context(), user.ID),
		Posts:     dto.ToPostResponses(posts, h.now()),
	})
}
