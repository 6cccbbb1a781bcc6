package service

import (
	"strings"

	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// ProjectService 作品集项目服务
type ProjectService struct {
	projectRepo repository.ProjectRepository
	tagRepo     repository.TagRepository
}

// NewProjectService 创建项目服务
func NewProjectService(projectRepo repository.ProjectRepository, tagRepo repository.TagRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
	}
}

// CreateProjectInput 创建项目输入
type CreateProjectInput struct {
	Slug        string
	Name        string
	Summary     string
	Description string
	RepoURL     string
	DemoURL     string
	CoverImage  string
	TechStack   []string
	SortOrder   int
	IsPublished bool
	TagNames    []string
}

// UpdateProjectInput 更新项目输入，nil 字段表示不变
type UpdateProjectInput struct {
	Slug        *string
	Name        *string
	Summary     *string
	Description *string
	RepoURL     *string
	DemoURL     *string
	CoverImage  *string
	TechStack   []string
	SortOrder   *int
	IsPublished *bool
	TagNames    []string
}

// List 项目列表
func (s *ProjectService) List(filter repository.ProjectListFilter) ([]models.Project, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.projectRepo.List(filter)
}

// GetBySlug 根据 slug 获取项目
func (s *ProjectService) GetBySlug(slug string, onlyPublished bool) (*models.Project, error) {
	project, err := s.projectRepo.GetBySlug(strings.TrimSpace(slug), onlyPublished)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// GetByID 根据 ID 获取项目
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// Create 创建项目
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	count, err := s.projectRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	project := &models.Project{
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Summary:     input.Summary,
		Description: input.Description,
		RepoURL:     strings.TrimSpace(input.RepoURL),
		DemoURL:     strings.TrimSpace(input.DemoURL),
		CoverImage:  strings.TrimSpace(input.CoverImage),
		TechStack:   models.StringArray(input.TechStack),
		SortOrder:   input.SortOrder,
		IsPublished: input.IsPublished,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	if err := s.applyTags(project, input.TagNames); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(project.ID)
}

// Update 更新项目
func (s *ProjectService) Update(id uint, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug != "" && slug != project.Slug {
			count, err := s.projectRepo.CountBySlug(slug, &project.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrSlugExists
			}
			project.Slug = slug
		}
	}
	if input.Name != nil {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.Summary != nil {
		project.Summary = *input.Summary
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.RepoURL != nil {
		project.RepoURL = strings.TrimSpace(*input.RepoURL)
	}
	if input.DemoURL != nil {
		project.DemoURL = strings.TrimSpace(*input.DemoURL)
	}
	if input.CoverImage != nil {
		project.CoverImage = strings.TrimSpace(*input.CoverImage)
	}
	if input.TechStack != nil {
		project.TechStack = models.StringArray(input.TechStack)
	}
	if input.SortOrder != nil {
		project.SortOrder = *input.SortOrder
	}
	if input.IsPublished != nil {
		project.IsPublished = *input.IsPublished
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}
	if input.TagNames != nil {
		if err := s.applyTags(project, input.TagNames); err != nil {
			return nil, err
		}
	}
	return s.projectRepo.GetByID(project.ID)
}

// Delete 删除项目
func (s *ProjectService) Delete(id uint) error {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	return s.projectRepo.Delete(id)
}

func (s *ProjectService) applyTags(project *models.Project, tagNames []string) error {
	tags, err := resolveTags(s.tagRepo, tagNames)
	if err != nil {
		return err
	}
	return s.projectRepo.ReplaceTags(project, tags)
}
