package models

import "time"

// Permission 权限目录表（可授予的权限点清单）
type Permission struct {
	ID          uint      `gorm:"primarykey" json:"id"`                 // 主键
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`     // 权限名，如 content:post:write
	Description string    `json:"description"`                          // 权限说明
	Group       string    `gorm:"column:perm_group;index" json:"group"` // 分组，便于后台展示（group 是保留字，改列名）
	CreatedAt   time.Time `json:"created_at"`                           // 创建时间
}

// TableName 指定表名
func (Permission) TableName() string {
	return "permissions"
}
