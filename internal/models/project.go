package models

import (
	"time"

	"gorm.io/gorm"
)

// Project 作品集项目表
type Project struct {
	ID          uint           `gorm:"primarykey" json:"id"`                             // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                 // 唯一标识（URL 片段）
	Name        string         `gorm:"not null" json:"name"`                             // 项目名称
	Summary     string         `json:"summary"`                                          // 一句话简介
	Description string         `gorm:"type:text" json:"description"`                     // 详细描述（Markdown）
	RepoURL     string         `json:"repo_url"`                                         // 代码仓库地址
	DemoURL     string         `json:"demo_url"`                                         // 在线演示地址
	CoverImage  string         `json:"cover_image"`                                      // 封面图 URL
	TechStack   StringArray    `gorm:"type:text" json:"tech_stack"`                      // 技术栈标签
	SortOrder   int            `gorm:"not null;default:0;index" json:"sort_order"`       // 展示排序（小的在前）
	IsPublished bool           `gorm:"not null;default:false;index" json:"is_published"` // 是否发布
	Tags        []Tag          `gorm:"many2many:project_tags" json:"tags"`               // 标签
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}
