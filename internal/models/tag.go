package models

import "time"

// Tag 标签表（文章与项目共用）
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	Name      string    `gorm:"uniqueIndex;not null" json:"name"` // 标签名
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"` // 唯一标识（URL 片段）
	CreatedAt time.Time `json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
