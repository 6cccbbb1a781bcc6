package router

import (
	"fmt"
	"strings"

	"github.com/seungwoo505/portfolio-api/internal/cache"
	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/constants"
	adminhandlers "github.com/seungwoo505/portfolio-api/internal/http/handlers/admin"
	publichandlers "github.com/seungwoo505/portfolio-api/internal/http/handlers/public"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/posts", publicHandler.ListPosts)
			public.GET("/posts/:slug", publicHandler.GetPost)
			public.GET("/projects", publicHandler.ListProjects)
			public.GET("/projects/:slug", publicHandler.GetProject)
			public.GET("/tags", publicHandler.ListTags)
			public.GET("/settings", publicHandler.GetPublicSettings)
			public.GET("/captcha/config", publicHandler.GetCaptchaConfig)
			public.GET("/captcha/image", publicHandler.GetCaptchaChallenge)
		}

		// 管理端认证接口（无需登录态）
		adminAuth := apiV1.Group("/admin/auth")
		{
			adminAuth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.Login)
			adminAuth.POST("/refresh", adminHandler.Refresh)
		}

		// 管理端接口（鉴权网关 + 守卫）
		admin := apiV1.Group("/admin")
		admin.Use(AuthGateMiddleware(c.AuthService, c.LoginLogService))
		{
			admin.POST("/auth/logout", adminHandler.Logout)
			admin.GET("/auth/me", adminHandler.Me)
			admin.PUT("/auth/password", adminHandler.UpdatePassword)

			// 内容管理
			admin.GET("/posts", RequirePermission(c.AuthzService, constants.PermPostRead), adminHandler.ListPosts)
			admin.GET("/posts/:id", RequirePermission(c.AuthzService, constants.PermPostRead), adminHandler.GetPost)
			admin.POST("/posts", RequirePermission(c.AuthzService, constants.PermPostWrite), adminHandler.CreatePost)
			admin.PUT("/posts/:id", RequirePermission(c.AuthzService, constants.PermPostWrite), adminHandler.UpdatePost)
			admin.DELETE("/posts/:id", RequirePermission(c.AuthzService, constants.PermPostWrite), adminHandler.DeletePost)

			admin.GET("/projects", RequirePermission(c.AuthzService, constants.PermProjectRead), adminHandler.ListProjects)
			admin.GET("/projects/:id", RequirePermission(c.AuthzService, constants.PermProjectRead), adminHandler.GetProject)
			admin.POST("/projects", RequirePermission(c.AuthzService, constants.PermProjectWrite), adminHandler.CreateProject)
			admin.PUT("/projects/:id", RequirePermission(c.AuthzService, constants.PermProjectWrite), adminHandler.UpdateProject)
			admin.DELETE("/projects/:id", RequirePermission(c.AuthzService, constants.PermProjectWrite), adminHandler.DeleteProject)

			admin.GET("/tags", RequirePermission(c.AuthzService, constants.PermPostRead), adminHandler.ListTags)
			admin.POST("/tags", RequirePermission(c.AuthzService, constants.PermTagWrite), adminHandler.CreateTag)
			admin.DELETE("/tags/:id", RequirePermission(c.AuthzService, constants.PermTagWrite), adminHandler.DeleteTag)

			// 站点设置与上传
			admin.GET("/settings/:key", RequirePermission(c.AuthzService, constants.PermSettingRead), adminHandler.GetSetting)
			admin.PUT("/settings/:key", RequirePermission(c.AuthzService, constants.PermSettingWrite), adminHandler.UpsertSetting)
			admin.POST("/upload", RequirePermission(c.AuthzService, constants.PermUploadWrite), adminHandler.UploadFile)

			// 审计日志
			admin.GET("/login-logs", RequirePermission(c.AuthzService, constants.PermLoginLogRead), adminHandler.ListLoginLogs)

			// 管理员与授权管理仅限超级管理员，防止普通管理员自助提权
			accounts := admin.Group("")
			accounts.Use(RequireRole(constants.RoleSuperAdmin))
			{
				accounts.GET("/admins", adminHandler.ListAdmins)
				accounts.GET("/admins/:id", adminHandler.GetAdmin)
				accounts.POST("/admins", adminHandler.CreateAdmin)
				accounts.PUT("/admins/:id", adminHandler.UpdateAdmin)
				accounts.POST("/admins/:id/unlock", adminHandler.UnlockAdmin)
				accounts.DELETE("/admins/:id", adminHandler.DeleteAdmin)

				accounts.GET("/permissions", adminHandler.ListPermissions)
				accounts.GET("/admins/:id/grants", adminHandler.ListAdminGrants)
				accounts.POST("/admins/:id/grants", adminHandler.GrantPermission)
				accounts.DELETE("/admins/:id/grants", adminHandler.RevokePermission)
			}
		}
	}

	return r
}
