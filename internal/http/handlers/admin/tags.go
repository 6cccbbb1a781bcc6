package admin

import (
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListTags 标签列表 (Admin)
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, tags)
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Tag name is required.")
		return
	}

	tag, err := h.TagService.Create(req.Name)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签（同时清理文章/项目关联）
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.TagService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
