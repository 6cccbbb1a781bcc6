package service

import (
	"strings"

	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// TagService 标签服务
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// List 标签列表
func (s *TagService) List() ([]models.Tag, error) {
	return s.tagRepo.List()
}

// Create 创建标签
func (s *TagService) Create(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTagName
	}
	slug := SlugifyTag(name)
	existing, err := s.tagRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTagExists
	}
	tag := &models.Tag{Name: name, Slug: slug}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签
func (s *TagService) Delete(id uint) error {
	return s.tagRepo.Delete(id)
}

// SlugifyTag 标签名转 slug（小写，空白转连字符）
func SlugifyTag(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// resolveTags 按名称解析标签集合，缺失的自动创建
func resolveTags(tagRepo repository.TagRepository, tagNames []string) ([]models.Tag, error) {
	names := make([]string, 0, len(tagNames))
	seen := make(map[string]struct{}, len(tagNames))
	for _, name := range tagNames {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, trimmed)
	}
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	existing, err := tagRepo.GetByNames(names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]models.Tag, len(existing))
	for _, tag := range existing {
		byName[strings.ToLower(tag.Name)] = tag
	}

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if tag, ok := byName[strings.ToLower(name)]; ok {
			tags = append(tags, tag)
			continue
		}
		tag := models.Tag{Name: name, Slug: SlugifyTag(name)}
		if err := tagRepo.Create(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
