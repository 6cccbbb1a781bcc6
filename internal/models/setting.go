package models

import "time"

// Setting 站点设置表（键值 JSON）
type Setting struct {
	ID        uint      `gorm:"primarykey" json:"id"`                    // 主键
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`         // 设置键
	ValueJSON JSON      `gorm:"type:text" json:"value"`                  // 设置值
	IsPublic  bool      `gorm:"not null;default:false" json:"is_public"` // 是否允许匿名读取
	UpdatedAt time.Time `json:"updated_at"`                              // 更新时间
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
