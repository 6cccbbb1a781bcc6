package admin

import (
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetSetting 读取设置 (Admin)
func (h *Handler) GetSetting(c *gin.Context) {
	setting, err := h.SettingService.Get(c.Param("key"))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, setting)
}

// UpsertSettingRequest 更新设置请求
type UpsertSettingRequest struct {
	Value    models.JSON `json:"value" binding:"required"`
	IsPublic bool        `json:"is_public"`
}

// UpsertSetting 更新或创建设置
func (h *Handler) UpsertSetting(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Setting value is required.")
		return
	}

	setting, err := h.SettingService.Upsert(c.Param("key"), req.Value, req.IsPublic)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, setting)
}
