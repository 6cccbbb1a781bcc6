package public

import (
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListTags 标签列表
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, tags)
}
