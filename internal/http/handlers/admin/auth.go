package admin

import (
	"errors"

	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/http/handlers/shared"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Admin        shared.AuthContext `json:"admin"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordAuthEvent(c, 0, "", constants.AuthEventLogin, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest)
		response.BadRequest(c, "Username and password are required.")
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneAdminLogin, req.CaptchaPayload); err != nil {
			h.recordAuthEvent(c, 0, req.Username, constants.AuthEventLogin, constants.LoginLogStatusFailed, constants.LoginLogFailReasonCaptchaInvalid)
			shared.RespondServiceError(c, err)
			return
		}
	}

	admin, accessToken, refreshToken, err := h.AuthService.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		h.recordAuthEvent(c, 0, req.Username, constants.AuthEventLogin, constants.LoginLogStatusFailed, loginFailReason(err))
		shared.RespondAuthError(c, err)
		return
	}

	h.recordAuthEvent(c, admin.ID, admin.Username, constants.AuthEventLogin, constants.LoginLogStatusSuccess, "")
	response.Success(c, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin: shared.AuthContext{
			AdminID:  admin.ID,
			Username: admin.Username,
			Role:     admin.Role,
		},
	})
}

// Logout 管理员登出
func (h *Handler) Logout(c *gin.Context) {
	auth, ok := shared.CurrentAdmin(c)
	if !ok {
		return
	}

	h.AuthService.Logout(auth.AdminID)
	h.recordAuthEvent(c, auth.AdminID, auth.Username, constants.AuthEventLogout, constants.LoginLogStatusSuccess, "")
	response.Success(c, nil)
}

// RefreshRequest 换发访问令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh 用刷新令牌换发新的访问令牌
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Refresh token is required.")
		return
	}

	admin, accessToken, err := h.AuthService.Refresh(req.RefreshToken, c.ClientIP())
	if err != nil {
		h.recordAuthEvent(c, 0, "", constants.AuthEventRefresh, constants.LoginLogStatusFailed, refreshFailReason(err))
		shared.RespondAuthError(c, err)
		return
	}

	h.recordAuthEvent(c, admin.ID, admin.Username, constants.AuthEventRefresh, constants.LoginLogStatusSuccess, "")
	response.Success(c, gin.H{"access_token": accessToken})
}

// Me 当前登录管理员信息
func (h *Handler) Me(c *gin.Context) {
	auth, ok := shared.CurrentAdmin(c)
	if !ok {
		return
	}

	admin, err := h.AdminService.GetByID(auth.AdminID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	if admin == nil {
		shared.RespondAuthError(c, service.ErrInactiveAccount)
		return
	}

	grants := []string{}
	if admin.Role != constants.RoleSuperAdmin && h.AuthzService != nil {
		if list, grantErr := h.AuthzService.ListGrants(admin.ID); grantErr == nil {
			grants = list
		}
	}
	response.Success(c, gin.H{
		"admin":       admin,
		"permissions": grants,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdatePassword 修改当前管理员密码
func (h *Handler) UpdatePassword(c *gin.Context) {
	auth, ok := shared.CurrentAdmin(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Old and new passwords are required.")
		return
	}

	if err := h.AuthService.ChangePassword(auth.AdminID, req.OldPassword, req.NewPassword); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) recordAuthEvent(c *gin.Context, adminID uint, username, event, status, failReason string) {
	if h.LoginLogService == nil {
		return
	}
	h.LoginLogService.Record(service.RecordAuthEventInput{
		AdminID:    adminID,
		Username:   username,
		Event:      event,
		Status:     status,
		FailReason: failReason,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		RequestID:  shared.RequestID(c),
	})
}

func loginFailReason(err error) string {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return constants.LoginLogFailReasonAccountNotFound
	case errors.Is(err, service.ErrAccountLocked):
		return constants.LoginLogFailReasonAccountLocked
	case errors.Is(err, service.ErrInvalidCredentials):
		return constants.LoginLogFailReasonInvalidCredentials
	default:
		return constants.LoginLogFailReasonInternalError
	}
}

func refreshFailReason(err error) string {
	switch {
	case errors.Is(err, service.ErrIPMismatch):
		return constants.LoginLogFailReasonIPMismatch
	case errors.Is(err, service.ErrInactiveAccount):
		return constants.LoginLogFailReasonAccountInactive
	case errors.Is(err, service.ErrInvalidToken):
		return constants.LoginLogFailReasonTokenInvalid
	default:
		return constants.LoginLogFailReasonInternalError
	}
}
