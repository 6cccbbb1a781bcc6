package admin

import (
	"strconv"

	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/repository"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAdmins 管理员列表
func (h *Handler) ListAdmins(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	filter := repository.AdminListFilter{
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	admins, total, err := h.AdminService.List(filter)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, admins, response.NewPagination(page, pageSize, total))
}

// GetAdmin 管理员详情
func (h *Handler) GetAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	admin, err := h.AdminService.GetByID(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	if admin == nil {
		response.NotFound(c, "Record not found.")
		return
	}
	response.Success(c, admin)
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// CreateAdmin 创建管理员
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username, password and role are required.")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	admin, err := h.AdminService.Create(service.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		IsActive: isActive,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// UpdateAdminRequest 更新管理员请求
type UpdateAdminRequest struct {
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// UpdateAdmin 更新管理员
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body.")
		return
	}

	admin, err := h.AdminService.Update(id, service.UpdateAdminInput{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
		Password: req.Password,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// UnlockAdmin 解除账号锁定
func (h *Handler) UnlockAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	admin, err := h.AdminService.Unlock(id)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, admin)
}

// DeleteAdmin 删除管理员
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.AdminService.Delete(id); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
