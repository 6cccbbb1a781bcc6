package repository

import (
	"errors"

	"github.com/seungwoo505/portfolio-api/internal/models"

	"gorm.io/gorm"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	List() ([]models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetByNames(names []string) ([]models.Tag, error)
	Create(tag *models.Tag) error
	Delete(id uint) error
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// List 标签列表
func (r *GormTagRepository) List() ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetBySlug 根据 slug 获取标签
func (r *GormTagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByNames 根据名称批量获取标签
func (r *GormTagRepository) GetByNames(names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Create 创建标签
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Delete 删除标签（同时清理关联）
func (r *GormTagRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}
