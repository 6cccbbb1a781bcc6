package provider

import (
	"github.com/seungwoo505/portfolio-api/internal/authz"
	"github.com/seungwoo505/portfolio-api/internal/cache"
	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/queue"
	"github.com/seungwoo505/portfolio-api/internal/repository"
	"github.com/seungwoo505/portfolio-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo      repository.AdminRepository
	PermissionRepo repository.PermissionRepository
	LoginLogRepo   repository.AdminLoginLogRepository
	PostRepo       repository.PostRepository
	ProjectRepo    repository.ProjectRepository
	TagRepo        repository.TagRepository
	SettingRepo    repository.SettingRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	AdminService      *service.AdminService
	PermissionService *service.PermissionService
	LoginLogService   *service.AdminLoginLogService
	PostService       *service.PostService
	ProjectService    *service.ProjectService
	TagService        *service.TagService
	SettingService    *service.SettingService
	UploadService     *service.UploadService
	CaptchaService    *service.CaptchaService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.PermissionRepo = repository.NewPermissionRepository(db)
	c.LoginLogRepo = repository.NewAdminLoginLogRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.ProjectRepo = repository.NewProjectRepository(db)
	c.TagRepo = repository.NewTagRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AdminService = service.NewAdminService(c.AdminRepo, c.AuthService, c.AuthzService)
	c.PermissionService = service.NewPermissionService(c.PermissionRepo, c.AdminRepo, c.AuthzService)
	c.LoginLogService = service.NewAdminLoginLogService(c.LoginLogRepo, c.QueueClient)
	c.PostService = service.NewPostService(c.PostRepo, c.TagRepo)
	c.ProjectService = service.NewProjectService(c.ProjectRepo, c.TagRepo)
	c.TagService = service.NewTagService(c.TagRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
}
