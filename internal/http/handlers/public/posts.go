package public

import (
	"strconv"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPosts 已发布文章列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	posts, total, err := h.PostService.List(repository.PostListFilter{
		OnlyPublished: true,
		Type:          c.Query("type"),
		TagSlug:       c.Query("tag"),
		Search:        c.Query("search"),
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPost 已发布文章详情，附带浏览计数
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.PostService.GetBySlug(c.Param("slug"), true)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.PostService.RecordView(post.ID)
	response.Success(c, post)
}
