package admin

import (
	"strconv"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListLoginLogs 登录审计日志列表
func (h *Handler) ListLoginLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	filter := repository.AdminLoginLogListFilter{
		Username: c.Query("username"),
		Event:    c.Query("event"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("admin_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.AdminID = uint(id)
		}
	}

	logs, total, err := h.LoginLogService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
