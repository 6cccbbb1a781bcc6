package shared

import (
	"net/http"

	"github.com/seungwoo505/portfolio-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	adminIDContextKey       = "admin_id"
	adminUsernameContextKey = "admin_username"
	adminRoleContextKey     = "admin_role"
)

// AuthContext 已认证管理员身份
type AuthContext struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CurrentAdmin 从上下文读取已认证身份，缺失时返回 401
func CurrentAdmin(c *gin.Context) (AuthContext, bool) {
	value, exists := c.Get(adminIDContextKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Authentication token is missing.")
		return AuthContext{}, false
	}
	adminID, ok := value.(uint)
	if !ok || adminID == 0 {
		response.Internal(c, "Internal server error.")
		return AuthContext{}, false
	}

	ctx := AuthContext{AdminID: adminID}
	if v, ok := c.Get(adminUsernameContextKey); ok {
		if username, ok := v.(string); ok {
			ctx.Username = username
		}
	}
	if v, ok := c.Get(adminRoleContextKey); ok {
		if role, ok := v.(string); ok {
			ctx.Role = role
		}
	}
	return ctx, true
}

// RequestID 读取请求 ID
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
