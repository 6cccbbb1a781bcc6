package repository

import (
	"time"

	"github.com/seungwoo505/portfolio-api/internal/models"

	"gorm.io/gorm"
)

// AdminLoginLogRepository 管理员登录日志数据访问接口
type AdminLoginLogRepository interface {
	Create(log *models.AdminLoginLog) error
	List(filter AdminLoginLogListFilter) ([]models.AdminLoginLog, int64, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

// GormAdminLoginLogRepository GORM 实现
type GormAdminLoginLogRepository struct {
	db *gorm.DB
}

// NewAdminLoginLogRepository 创建管理员登录日志仓库
func NewAdminLoginLogRepository(db *gorm.DB) *GormAdminLoginLogRepository {
	return &GormAdminLoginLogRepository{db: db}
}

// Create 创建登录日志
func (r *GormAdminLoginLogRepository) Create(log *models.AdminLoginLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 查询登录日志
func (r *GormAdminLoginLogRepository) List(filter AdminLoginLogListFilter) ([]models.AdminLoginLog, int64, error) {
	query := r.db.Model(&models.AdminLoginLog{})
	if filter.AdminID != 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}
	if filter.Event != "" {
		query = query.Where("event = ?", filter.Event)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FailReason != "" {
		query = query.Where("fail_reason = ?", filter.FailReason)
	}
	if filter.ClientIP != "" {
		query = query.Where("client_ip = ?", filter.ClientIP)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var logs []models.AdminLoginLog
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// DeleteBefore 删除截止时间之前的日志（保留期清理）
func (r *GormAdminLoginLogRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.AdminLoginLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
