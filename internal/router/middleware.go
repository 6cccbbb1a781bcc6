package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/authz"
	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/http/response"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const refreshTokenHeader = "X-Refresh-Token"
const newTokenHeader = "X-New-Token"

const (
	adminIDContextKey       = "admin_id"
	adminUsernameContextKey = "admin_username"
	adminRoleContextKey     = "admin_role"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			refreshTokenHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", strings.Join([]string{newTokenHeader, requestIDHeader}, ", "))
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// AuthGateMiddleware 管理端鉴权网关
// 校验访问令牌；访问令牌失效时尝试用 X-Refresh-Token 静默续签，
// 续签成功通过 X-New-Token 响应头下发新访问令牌
func AuthGateMiddleware(authSvc *service.AuthService, loginLogSvc *service.AdminLoginLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authSvc == nil {
			abortAuthError(c, service.ErrInternalAuth)
			return
		}

		tokenString, ok := extractBearerToken(c)
		if !ok {
			abortAuthError(c, service.ErrMissingToken)
			return
		}

		clientIP := c.ClientIP()
		claims, err := authSvc.VerifyAccessToken(tokenString, clientIP)
		if err == nil {
			attachAuthContext(c, authSvc, claims)
			return
		}
		if service.AuthErrorFrom(err).Kind == service.AuthKindIPMismatch {
			// 令牌本身有效但来源不符，不给静默续签机会
			abortAuthError(c, err)
			return
		}

		refreshToken := strings.TrimSpace(c.GetHeader(refreshTokenHeader))
		if refreshToken == "" {
			abortAuthError(c, service.ErrSessionExpired)
			return
		}

		admin, newAccessToken, err := authSvc.Refresh(refreshToken, clientIP)
		if err != nil {
			switch service.AuthErrorFrom(err).Kind {
			case service.AuthKindIPMismatch, service.AuthKindInactiveAccount, service.AuthKindInternalError:
				abortAuthError(c, err)
			default:
				// 刷新令牌本身无效时统一提示会话过期
				abortAuthError(c, service.ErrSessionExpired)
			}
			return
		}
		c.Writer.Header().Set(newTokenHeader, newAccessToken)

		if loginLogSvc != nil {
			loginLogSvc.Record(service.RecordAuthEventInput{
				AdminID:   admin.ID,
				Username:  admin.Username,
				Event:     constants.AuthEventRefresh,
				Status:    constants.LoginLogStatusSuccess,
				ClientIP:  clientIP,
				UserAgent: c.Request.UserAgent(),
				RequestID: getRequestID(c),
			})
		}

		c.Set(adminIDContextKey, admin.ID)
		c.Set(adminUsernameContextKey, admin.Username)
		c.Set(adminRoleContextKey, admin.Role)
		c.Next()
	}
}

// attachAuthContext 校验账号快照并把身份写入请求上下文
func attachAuthContext(c *gin.Context, authSvc *service.AuthService, claims *service.JWTClaims) {
	state, err := authSvc.LoadAuthState(c.Request.Context(), claims.AdminID)
	if err != nil {
		abortAuthError(c, service.WrapAuthError(service.AuthKindInternalError, "Internal server error.", err))
		return
	}
	if state == nil || !state.IsActive {
		abortAuthError(c, service.ErrInactiveAccount)
		return
	}

	c.Set(adminIDContextKey, claims.AdminID)
	c.Set(adminUsernameContextKey, state.Username)
	c.Set(adminRoleContextKey, state.Role)
	c.Next()
}

// RequirePermission 权限点守卫，超级管理员绕过授予检查
func RequirePermission(authzSvc *authz.Service, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, role, ok := currentAdmin(c)
		if !ok {
			abortAuthError(c, service.ErrMissingToken)
			return
		}
		if role == constants.RoleSuperAdmin {
			c.Next()
			return
		}
		if authzSvc == nil {
			logger.Errorw("permission_guard_unavailable", "permission", permission)
			abortAuthError(c, service.ErrInternalAuth)
			return
		}

		allowed, err := authzSvc.HasPermission(adminID, permission)
		if err != nil {
			logger.Errorw("permission_guard_enforce_failed",
				"admin_id", adminID,
				"permission", permission,
				"error", err,
			)
			abortAuthError(c, service.WrapAuthError(service.AuthKindInternalError, "Internal server error.", err))
			return
		}
		if !allowed {
			logger.Warnw("permission_denied",
				"admin_id", adminID,
				"permission", permission,
				"path", c.Request.URL.Path,
			)
			abortAuthError(c, service.NewInsufficientPermissionError(permission))
			return
		}
		c.Next()
	}
}

// RequireRole 角色守卫，超级管理员恒通过
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := currentAdmin(c)
		if !ok {
			abortAuthError(c, service.ErrMissingToken)
			return
		}
		if role == constants.RoleSuperAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortAuthError(c, service.NewInsufficientRoleError(roles, role))
	}
}

func currentAdmin(c *gin.Context) (uint, string, bool) {
	idValue, ok := c.Get(adminIDContextKey)
	if !ok {
		return 0, "", false
	}
	adminID, ok := idValue.(uint)
	if !ok || adminID == 0 {
		return 0, "", false
	}
	role := ""
	if roleValue, ok := c.Get(adminRoleContextKey); ok {
		if r, ok := roleValue.(string); ok {
			role = r
		}
	}
	return adminID, role, true
}

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortAuthError(c *gin.Context, err error) {
	authErr := service.AuthErrorFrom(err)
	if authErr.Kind == service.AuthKindInternalError {
		logger.Errorw("auth_gate_internal_error", "request_id", getRequestID(c), "error", err)
	}
	response.AbortWithKind(c, authErr.Kind.HTTPStatus(), string(authErr.Kind), authErr.Message)
}
