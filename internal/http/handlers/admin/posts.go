package admin

import (
	"strconv"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/repository"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPosts 文章列表 (Admin)
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	posts, total, err := h.PostService.List(repository.PostListFilter{
		Type:     c.Query("type"),
		TagSlug:  c.Query("tag"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPost 文章详情 (Admin)
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	post, err := h.PostService.GetByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Slug        string   `json:"slug" binding:"required"`
	Type        string   `json:"type"`
	Title       string   `json:"title" binding:"required"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"cover_image"`
	IsPublished bool     `json:"is_published"`
	Tags        []string `json:"tags"`
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Slug and title are required.")
		return
	}

	post, err := h.PostService.Create(service.CreatePostInput{
		Slug:        req.Slug,
		Type:        req.Type,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		IsPublished: req.IsPublished,
		TagNames:    req.Tags,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePostRequest 更新文章请求
type UpdatePostRequest struct {
	Slug        *string  `json:"slug"`
	Type        *string  `json:"type"`
	Title       *string  `json:"title"`
	Summary     *string  `json:"summary"`
	Content     *string  `json:"content"`
	CoverImage  *string  `json:"cover_image"`
	IsPublished *bool    `json:"is_published"`
	Tags        []string `json:"tags"`
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	post, err := h.PostService.Update(id, service.UpdatePostInput{
		Slug:        req.Slug,
		Type:        req.Type,
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		IsPublished: req.IsPublished,
		TagNames:    req.Tags,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.PostService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
