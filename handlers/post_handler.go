package handlers

import (
	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the public feed.
type PostHandler struct {
	postService  services.PostService
	statsService services.StatsService
	Helper       *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService, statsService services.StatsService) *PostHandler {
	return &PostHandler{postService: postService, statsService: statsService, Helper: helper.NewHTTPHelper()}
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.BlogListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}
	params.Normalize(models.BlogPageSize)

	posts, total, err := h.postService.List(params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Success", posts, params.PageParams, total)
}

// GetPost counts a view from the client IP before answering.
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.Detail(middleware.CurrentActor(c), c.Param("slug"), c.ClientIP())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", post)
}

func (h *PostHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}
