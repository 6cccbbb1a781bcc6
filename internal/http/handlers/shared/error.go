package shared

import (
	"errors"
	"net/http"

	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID := RequestID(c); requestID != "" {
		return logger.SW("request_id", requestID)
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", status,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, status, msg)
}

// RespondAuthError 返回认证/授权错误，状态码由错误类别决定。
func RespondAuthError(c *gin.Context, err error) {
	authErr := service.AuthErrorFrom(err)
	if authErr == nil {
		response.Internal(c, "Internal server error.")
		return
	}
	if authErr.Kind == service.AuthKindInternalError {
		RequestLog(c).Errorw("auth_error", "error", err)
	}
	response.ErrorWithKind(c, authErr.Kind.HTTPStatus(), string(authErr.Kind), authErr.Message)
}

// RespondServiceError 按业务错误哨兵分派响应。
// 未识别的错误统一按 500 处理。
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case err == nil:
		response.Success(c, nil)
	case service.IsAuthError(err):
		RespondAuthError(c, err)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "Record not found.")
	case errors.Is(err, service.ErrSlugExists):
		response.BadRequest(c, "Slug already exists.")
	case errors.Is(err, service.ErrInvalidSlug):
		response.BadRequest(c, "Slug is required.")
	case errors.Is(err, service.ErrInvalidPostType):
		response.BadRequest(c, "Invalid post type.")
	case errors.Is(err, service.ErrInvalidTagName):
		response.BadRequest(c, "Tag name is required.")
	case errors.Is(err, service.ErrTagExists):
		response.BadRequest(c, "Tag already exists.")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, "Invalid role.")
	case errors.Is(err, service.ErrInvalidUsername):
		response.BadRequest(c, "Username is required.")
	case errors.Is(err, service.ErrUsernameExists):
		response.BadRequest(c, "Username already exists.")
	case errors.Is(err, service.ErrInvalidPassword):
		response.BadRequest(c, "Password is invalid or too short.")
	case errors.Is(err, service.ErrUnknownPermission):
		response.BadRequest(c, "Unknown permission.")
	case errors.Is(err, service.ErrLastSuperAdmin):
		response.BadRequest(c, "Cannot remove the last active super admin.")
	case errors.Is(err, service.ErrCaptchaRequired):
		response.BadRequest(c, "Captcha is required.")
	case errors.Is(err, service.ErrCaptchaInvalid):
		response.BadRequest(c, "Captcha verification failed.")
	case errors.Is(err, service.ErrCaptchaDisabled):
		response.BadRequest(c, "Captcha is not enabled.")
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error.", err)
	}
}
