package models

import (
	"time"

	"github.com/seungwoo505/portfolio-api/internal/constants"

	"gorm.io/gorm"
)

// Admin 管理员表
type Admin struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                         // 主键
	Username            string         `gorm:"uniqueIndex;not null" json:"username"`         // 管理员账号
	Email               string         `gorm:"index" json:"email"`                           // 联系邮箱
	PasswordHash        string         `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	Role                string         `gorm:"not null;default:editor;index" json:"role"`    // 角色：super_admin / admin / editor
	IsActive            bool           `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	FailedLoginAttempts int            `gorm:"not null;default:0" json:"-"`                  // 连续登录失败次数
	LockedUntil         *time.Time     `gorm:"index" json:"locked_until"`                    // 锁定截止时间（惰性解锁）
	LastLoginAt         *time.Time     `json:"last_login_at"`                                // 最后登录时间
	LastLoginIP         string         `json:"last_login_ip"`                                // 最后登录 IP
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt           time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// IsSuper 是否超级管理员（免权限校验）
func (a *Admin) IsSuper() bool {
	return a != nil && a.Role == constants.RoleSuperAdmin
}

// IsLocked 当前时刻是否处于锁定窗口内
func (a *Admin) IsLocked(now time.Time) bool {
	return a != nil && a.LockedUntil != nil && a.LockedUntil.After(now)
}
