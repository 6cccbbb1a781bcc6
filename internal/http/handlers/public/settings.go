package public

import (
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetPublicSettings 公开站点设置（仅 is_public 的键）
func (h *Handler) GetPublicSettings(c *gin.Context) {
	settings, err := h.SettingService.PublicSettings()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, settings)
}
