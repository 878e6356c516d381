package handlers

import (
	"errors"
	"io"

	"blog-api/helper"
	"blog-api/middleware"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService services.BlogService
	Helper      *helper.HTTPHelper
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService, Helper: helper.NewHTTPHelper()}
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	blog, err := h.blogService.Create(middleware.CurrentActor(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Blog created successfully", blog)
}

func (h *BlogHandler) GetBlogs(c *gin.Context) {
	var params models.BlogListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}
	params.Normalize(models.BlogPageSize)

	blogs, total, err := h.blogService.List(middleware.CurrentActor(c), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPaginated(c, "Success", blogs, params.PageParams, total)
}

func (h *BlogHandler) GetFeatured(c *gin.Context) {
	blogs, err := h.blogService.Featured()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", blogs)
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	blog, err := h.blogService.Get(middleware.CurrentActor(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", blog)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	blog, err := h.blogService.Update(middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Blog updated successfully", blog)
}

// PublishBlog sets is_published from the body, or toggles it when the body
// is empty.
func (h *BlogHandler) PublishBlog(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	var req models.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.Helper.SendBindingError(c, err)
		return
	}

	blog, err := h.blogService.SetPublished(middleware.CurrentActor(c), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	message := "Blog unpublished"
	if blog.IsPublished {
		message = "Blog published"
	}
	h.Helper.SendSuccess(c, message, blog)
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id, ok := h.Helper.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.blogService.Delete(middleware.CurrentActor(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
