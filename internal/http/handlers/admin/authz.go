package admin

import (
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListPermissions 权限目录列表
func (h *Handler) ListPermissions(c *gin.Context) {
	permissions, err := h.PermissionService.Catalog()
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, permissions)
}

// ListAdminGrants 查询管理员被授予的权限点
func (h *Handler) ListAdminGrants(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	grants, err := h.PermissionService.GrantsOf(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, grants)
}

// GrantRequest 授予/撤销权限请求
type GrantRequest struct {
	Permission string `json:"permission" binding:"required"`
}

// GrantPermission 授予管理员权限点
func (h *Handler) GrantPermission(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permission is required.")
		return
	}

	if err := h.PermissionService.Grant(id, req.Permission); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// RevokePermission 撤销管理员权限点
func (h *Handler) RevokePermission(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permission is required.")
		return
	}

	if err := h.PermissionService.Revoke(id, req.Permission); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
