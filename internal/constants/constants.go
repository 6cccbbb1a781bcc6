package constants

// 管理员角色常量
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
)

// AdminRoles 全部可用角色
var AdminRoles = []string{RoleSuperAdmin, RoleAdmin, RoleEditor}

// ValidRole 校验角色取值
func ValidRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

// 文章类型常量
const (
	PostTypeBlog = "blog"
	PostTypeNote = "note"
)

// 登录日志事件常量
const (
	AuthEventLogin   = "login"
	AuthEventLogout  = "logout"
	AuthEventRefresh = "refresh"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonCaptchaInvalid     = "captcha_invalid"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonAccountNotFound    = "account_not_found"
	LoginLogFailReasonAccountLocked      = "account_locked"
	LoginLogFailReasonAccountInactive    = "account_inactive"
	LoginLogFailReasonTokenInvalid       = "token_invalid"
	LoginLogFailReasonIPMismatch         = "ip_mismatch"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 权限点常量
const (
	PermPostRead     = "content:post:read"
	PermPostWrite    = "content:post:write"
	PermProjectRead  = "content:project:read"
	PermProjectWrite = "content:project:write"
	PermTagWrite     = "content:tag:write"
	PermSettingRead  = "site:setting:read"
	PermSettingWrite = "site:setting:write"
	PermUploadWrite  = "site:upload:write"
	PermLoginLogRead = "audit:login_log:read"
)

// PermissionCatalog 权限目录（name -> 分组）
var PermissionCatalog = map[string]string{
	PermPostRead:     "content",
	PermPostWrite:    "content",
	PermProjectRead:  "content",
	PermProjectWrite: "content",
	PermTagWrite:     "content",
	PermSettingRead:  "site",
	PermSettingWrite: "site",
	PermUploadWrite:  "site",
	PermLoginLogRead: "audit",
}

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneAdminLogin = "admin_login"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskAuthAuditLog    = "auth:audit_log"
	TaskLoginLogCleanup = "auth:login_log_cleanup"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pf"
)

// 设置键常量
const (
	SettingKeySiteConfig    = "site_config"
	SettingKeyProfileConfig = "profile_config"
	SettingKeySocialLinks   = "social_links"
	SettingKeyCaptchaConfig = "captcha_config"
)
