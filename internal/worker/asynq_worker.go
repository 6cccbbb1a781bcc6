package worker

import (
	"context"
	"encoding/json"

	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/provider"
	"github.com/seungwoo505/portfolio-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskAuthAuditLog, c.handleAuthAuditLog)
	mux.HandleFunc(queue.TaskLoginLogCleanup, c.handleLoginLogCleanup)
}

func (c *Consumer) handleAuthAuditLog(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_auth_audit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AuthAuditLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_auth_audit_unmarshal_failed", "error", err)
		return err
	}
	if payload.Event == "" {
		logger.Debugw("worker_auth_audit_skip_invalid_payload")
		return nil
	}
	if c.LoginLogService == nil {
		logger.Warnw("worker_auth_audit_skip_service_nil", "event", payload.Event)
		return nil
	}
	if err := c.LoginLogService.Persist(payload); err != nil {
		logger.Warnw("worker_auth_audit_persist_failed",
			"admin_id", payload.AdminID,
			"event", payload.Event,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleLoginLogCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_login_log_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LoginLogCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_login_log_cleanup_unmarshal_failed", "error", err)
		return err
	}
	if c.LoginLogService == nil {
		logger.Warnw("worker_login_log_cleanup_skip_service_nil")
		return nil
	}
	removed, err := c.LoginLogService.Cleanup(payload.RetentionDays)
	if err != nil {
		logger.Warnw("worker_login_log_cleanup_failed", "retention_days", payload.RetentionDays, "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_login_log_cleanup_done", "removed", removed, "retention_days", payload.RetentionDays)
	}
	return nil
}
