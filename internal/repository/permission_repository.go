package repository

import (
	"errors"

	"github.com/seungwoo505/portfolio-api/internal/models"

	"gorm.io/gorm"
)

// PermissionRepository 权限目录数据访问接口
type PermissionRepository interface {
	List() ([]models.Permission, error)
	GetByName(name string) (*models.Permission, error)
}

// GormPermissionRepository GORM 实现
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository 创建权限目录仓库
func NewPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// List 权限目录列表
func (r *GormPermissionRepository) List() ([]models.Permission, error) {
	perms := make([]models.Permission, 0)
	if err := r.db.Order("perm_group ASC, name ASC").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// GetByName 根据名称获取权限
func (r *GormPermissionRepository) GetByName(name string) (*models.Permission, error) {
	var perm models.Permission
	if err := r.db.Where("name = ?", name).First(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &perm, nil
}
