package service

import (
	"strings"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/queue"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// AdminLoginLogService 管理员登录审计服务
// 队列可用时异步落库，不可用时同步写入
type AdminLoginLogService struct {
	repo        repository.AdminLoginLogRepository
	queueClient *queue.Client
}

// NewAdminLoginLogService 创建管理员登录审计服务
func NewAdminLoginLogService(repo repository.AdminLoginLogRepository, queueClient *queue.Client) *AdminLoginLogService {
	return &AdminLoginLogService{
		repo:        repo,
		queueClient: queueClient,
	}
}

// RecordAuthEventInput 审计记录输入
type RecordAuthEventInput struct {
	AdminID    uint
	Username   string
	Event      string
	Status     string
	FailReason string
	ClientIP   string
	UserAgent  string
	RequestID  string
}

// Record 记录登录/登出/刷新事件
// 审计失败只告警，不阻断认证主流程
func (s *AdminLoginLogService) Record(input RecordAuthEventInput) {
	if s == nil || s.repo == nil {
		return
	}

	event := strings.ToLower(strings.TrimSpace(input.Event))
	switch event {
	case constants.AuthEventLogin, constants.AuthEventLogout, constants.AuthEventRefresh:
	default:
		event = constants.AuthEventLogin
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != constants.LoginLogStatusSuccess {
		status = constants.LoginLogStatusFailed
	}

	failReason := strings.ToLower(strings.TrimSpace(input.FailReason))
	if status == constants.LoginLogStatusSuccess {
		failReason = ""
	} else if failReason == "" {
		failReason = constants.LoginLogFailReasonInternalError
	}

	payload := queue.AuthAuditLogPayload{
		AdminID:    input.AdminID,
		Username:   strings.TrimSpace(input.Username),
		Event:      event,
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		OccurredAt: time.Now().Unix(),
	}

	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueAuthAuditLog(payload)
		if err == nil {
			return
		}
		logger.Warnw("auth_audit_enqueue_failed", "event", event, "error", err)
	}

	if err := s.Persist(payload); err != nil {
		logger.Warnw("auth_audit_persist_failed", "event", event, "error", err)
	}
}

// Persist 审计记录落库（队列消费者与同步兜底共用）
func (s *AdminLoginLogService) Persist(payload queue.AuthAuditLogPayload) error {
	if s == nil || s.repo == nil {
		return nil
	}
	occurredAt := time.Unix(payload.OccurredAt, 0)
	if payload.OccurredAt == 0 {
		occurredAt = time.Now()
	}
	return s.repo.Create(&models.AdminLoginLog{
		AdminID:    payload.AdminID,
		Username:   payload.Username,
		Event:      payload.Event,
		Status:     payload.Status,
		FailReason: payload.FailReason,
		ClientIP:   payload.ClientIP,
		UserAgent:  payload.UserAgent,
		RequestID:  payload.RequestID,
		CreatedAt:  occurredAt,
	})
}

// List 查询审计日志
func (s *AdminLoginLogService) List(filter repository.AdminLoginLogListFilter) ([]models.AdminLoginLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AdminLoginLog{}, 0, nil
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.repo.List(filter)
}

// Cleanup 按保留期清理过期日志
func (s *AdminLoginLogService) Cleanup(retentionDays int) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, nil
	}
	if retentionDays <= 0 {
		retentionDays = 90
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteBefore(cutoff)
}
