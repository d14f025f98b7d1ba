package handler

import (
	"net/http"
	"time"

	"github.com/Yossy4131/LT/internal/api/dto"
	"github.com/Yossy4131/LT/internal/api/middleware"
	"github.com/Yossy4131/LT/internal/api/util"
	"github.com/Yossy4131/LT/internal/core/service"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService *service.PostService
	sessions    *service.SessionManager
	pageSize    int
	now         func() time.Time
}

func NewPostHandler(postService *service.PostService, sessions *service.SessionManager, pageSize int) *PostHandler {
	return &PostHandler{
		postService: postService,
		sessions:    sessions,
		pageSize:    pageSize,
		now:         time.Now,
	}
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	filter, ok := parseListFilter(c, h.pageSize)
	if !ok {
		return
	}

	posts, err := h.postService.List(c.Request.Context(), filter.Limit, filter.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PostListResponse{
		Items: dto.ToPostResponses(posts, h.now()),
		Pagination: dto.PaginationInfo{
			Total:  h.postService.Count(c.Request.Context()),
			Limit:  filter.Limit,
			Offset: filter.Offset,
		},
	})
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bind(c, &req) {
		return
	}

	user := h.sessions.CurrentUser(middleware.GetSession(c))
	if user == nil {
		_ = c.Error(service.ErrAuthenticationRequired)
		return
	}

	id, err := h.postService.Create(c.Request.Context(), user.ID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePostResponse{ID: id})
}

func parseListFilter(c *gin.Context, defaultLimit int) (util.ListFilter, bool) {
	filter, err := util.ParseListFilter(c, defaultLimit)
	if err != nil {
		_ = c.Error(service.NewServiceError(service.KindValidation, err.Error(), err))
		return filter, false
	}
	return filter, true
}
