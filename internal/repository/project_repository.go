package repository

import (
	"errors"
	"strings"

	"github.com/seungwoo505/portfolio-api/internal/models"

	"gorm.io/gorm"
)

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	List(filter ProjectListFilter) ([]models.Project, int64, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Project, error)
	GetByID(id uint) (*models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	ReplaceTags(project *models.Project, tags []models.Tag) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormProjectRepository GORM 实现
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建项目仓库
func NewProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// List 项目列表（按 sort_order 升序）
func (r *GormProjectRepository) List(filter ProjectListFilter) ([]models.Project, int64, error) {
	var projects []models.Project
	query := r.db.Model(&models.Project{})

	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("slug LIKE ? OR name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Tags").Order("sort_order ASC, id ASC").Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// GetBySlug 根据 slug 获取项目
func (r *GormProjectRepository) GetBySlug(slug string, onlyPublished bool) (*models.Project, error) {
	query := r.db.Preload("Tags").Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("is_published = ?", true)
	}

	var project models.Project
	if err := query.First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// GetByID 根据 ID 获取项目
func (r *GormProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Tags").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// Create 创建项目
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update 更新项目
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// ReplaceTags 重置项目标签关联
func (r *GormProjectRepository) ReplaceTags(project *models.Project, tags []models.Tag) error {
	if project == nil {
		return nil
	}
	return r.db.Model(project).Association("Tags").Replace(tags)
}

// Delete 删除项目
func (r *GormProjectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProjectRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
