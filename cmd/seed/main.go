package main

import (
	"os"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化权限目录与默认超级管理员
	if err := models.InitPermissionCatalog(); err != nil {
		stdLog.Fatalf("Failed to init permission catalog: %v", err)
	}
	if err := models.InitDefaultAdmin(os.Getenv("PF_DEFAULT_ADMIN_USERNAME"), os.Getenv("PF_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}

	// 添加标签
	tags := []models.Tag{
		{Name: "Go", Slug: "go"},
		{Name: "PostgreSQL", Slug: "postgresql"},
		{Name: "Redis", Slug: "redis"},
		{Name: "DevOps", Slug: "devops"},
	}
	for _, tag := range tags {
		var existing models.Tag
		if err := models.DB.Where("slug = ?", tag.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tag).Error; err != nil {
				stdLog.Printf("Failed to create tag %s: %v", tag.Slug, err)
			} else {
				stdLog.Printf("Created tag: %s", tag.Slug)
			}
		} else {
			stdLog.Printf("Tag already exists: %s", tag.Slug)
		}
	}

	// 读取标签 ID，给文章/项目挂标签
	tagsBySlug := map[string]models.Tag{}
	var tagList []models.Tag
	if err := models.DB.Where("slug IN ?", []string{"go", "postgresql", "redis", "devops"}).Find(&tagList).Error; err != nil {
		stdLog.Printf("Failed to load tags: %v", err)
	}
	for _, tag := range tagList {
		tagsBySlug[tag.Slug] = tag
	}

	now := time.Now()

	// 添加示例文章
	posts := []models.Post{
		{
			Slug:        "hello-world",
			Type:        constants.PostTypeBlog,
			Title:       "Hello, World",
			Summary:     "First post on this site.",
			Content:     "# Hello\n\nThis site is powered by a small Go API.",
			IsPublished: true,
			PublishedAt: &now,
			Tags:        []models.Tag{tagsBySlug["go"]},
		},
		{
			Slug:    "notes-on-redis-rate-limiting",
			Type:    constants.PostTypeNote,
			Title:   "Notes on Redis rate limiting",
			Summary: "Fixed-window counters with INCR and EXPIRE.",
			Content: "Draft notes, not published yet.",
			Tags:    []models.Tag{tagsBySlug["redis"]},
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	// 添加示例项目
	projects := []models.Project{
		{
			Slug:        "portfolio-api",
			Name:        "Portfolio API",
			Summary:     "The backend behind this site.",
			Description: "Gin + GORM API with an asynq worker for audit logs.",
			RepoURL:     "https://github.com/seungwoo505/portfolio-api",
			TechStack:   models.StringArray{"Go", "Gin", "PostgreSQL", "Redis"},
			SortOrder:   1,
			IsPublished: true,
			Tags:        []models.Tag{tagsBySlug["go"], tagsBySlug["postgresql"]},
		},
	}
	for _, project := range projects {
		var existing models.Project
		if err := models.DB.Where("slug = ?", project.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&project).Error; err != nil {
				stdLog.Printf("Failed to create project %s: %v", project.Slug, err)
			} else {
				stdLog.Printf("Created project: %s", project.Slug)
			}
		} else {
			stdLog.Printf("Project already exists: %s", project.Slug)
		}
	}

	// 添加公开站点设置
	settings := []models.Setting{
		{
			Key: constants.SettingKeySiteConfig,
			ValueJSON: models.JSON(map[string]interface{}{
				"title":       "Seungwoo's Portfolio",
				"description": "Projects and writing.",
			}),
			IsPublic: true,
		},
		{
			Key: constants.SettingKeySocialLinks,
			ValueJSON: models.JSON(map[string]interface{}{
				"github": "https://github.com/seungwoo505",
			}),
			IsPublic: true,
		},
	}
	for _, setting := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", setting.Key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&setting).Error; err != nil {
				stdLog.Printf("Failed to create setting %s: %v", setting.Key, err)
			} else {
				stdLog.Printf("Created setting: %s", setting.Key)
			}
		} else {
			stdLog.Printf("Setting already exists: %s", setting.Key)
		}
	}

	stdLog.Println("Seed data initialized successfully!")
}
