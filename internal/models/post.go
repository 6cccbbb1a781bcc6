package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 文章表（博客 / 随笔）
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`                             // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                 // 唯一标识（URL 片段）
	Type        string         `gorm:"not null;default:blog;index" json:"type"`          // 类型：blog / note
	Title       string         `gorm:"not null" json:"title"`                            // 标题
	Summary     string         `json:"summary"`                                          // 摘要
	Content     string         `gorm:"type:text" json:"content"`                         // 正文（Markdown）
	CoverImage  string         `json:"cover_image"`                                      // 封面图 URL
	IsPublished bool           `gorm:"not null;default:false;index" json:"is_published"` // 是否发布
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`                        // 发布时间
	ViewCount   uint64         `gorm:"not null;default:0" json:"view_count"`             // 浏览次数
	Tags        []Tag          `gorm:"many2many:post_tags" json:"tags"`                  // 标签
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
