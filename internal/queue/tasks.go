package queue

import (
	"encoding/json"

	"github.com/seungwoo505/portfolio-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskAuthAuditLog 认证审计落库任务
	TaskAuthAuditLog = constants.TaskAuthAuditLog
	// TaskLoginLogCleanup 登录日志保留期清理任务
	TaskLoginLogCleanup = constants.TaskLoginLogCleanup
)

// AuthAuditLogPayload 认证审计任务载荷
type AuthAuditLogPayload struct {
	AdminID    uint   `json:"admin_id"`
	Username   string `json:"username"`
	Event      string `json:"event"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason"`
	ClientIP   string `json:"client_ip"`
	UserAgent  string `json:"user_agent"`
	RequestID  string `json:"request_id"`
	OccurredAt int64  `json:"occurred_at"`
}

// LoginLogCleanupPayload 登录日志清理任务载荷
type LoginLogCleanupPayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewAuthAuditLogTask 创建认证审计任务
func NewAuthAuditLogTask(payload AuthAuditLogPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuthAuditLog, body), nil
}

// NewLoginLogCleanupTask 创建登录日志清理任务
func NewLoginLogCleanupTask(payload LoginLogCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLoginLogCleanup, body), nil
}
