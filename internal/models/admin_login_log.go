package models

import "time"

// AdminLoginLog 管理员登录审计表
type AdminLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`    // 主键
	AdminID    uint      `gorm:"index" json:"admin_id"`   // 管理员 ID（账号不存在时为 0）
	Username   string    `gorm:"index" json:"username"`   // 提交的账号名
	Event      string    `gorm:"index" json:"event"`      // 事件：login / logout / refresh
	Status     string    `gorm:"index" json:"status"`     // 状态：success / failed
	FailReason string    `json:"fail_reason"`             // 失败原因
	ClientIP   string    `json:"client_ip"`               // 客户端 IP
	UserAgent  string    `json:"user_agent"`              // User-Agent
	RequestID  string    `gorm:"index" json:"request_id"` // 请求 ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"` // 记录时间
}

// TableName 指定表名
func (AdminLoginLog) TableName() string {
	return "admin_login_logs"
}
