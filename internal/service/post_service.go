package service

import (
	"strings"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// PostService 文章服务
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

// NewPostService 创建文章服务
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
	}
}

// CreatePostInput 创建文章输入
type CreatePostInput struct {
	Slug        string
	Type        string
	Title       string
	Summary     string
	Content     string
	CoverImage  string
	IsPublished bool
	TagNames    []string
}

// UpdatePostInput 更新文章输入，nil 字段表示不变
type UpdatePostInput struct {
	Slug        *string
	Type        *string
	Title       *string
	Summary     *string
	Content     *string
	CoverImage  *string
	IsPublished *bool
	TagNames    []string
}

// List 文章列表
func (s *PostService) List(filter repository.PostListFilter) ([]models.Post, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.postRepo.List(filter)
}

// GetBySlug 根据 slug 获取文章
func (s *PostService) GetBySlug(slug string, onlyPublished bool) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(strings.TrimSpace(slug), onlyPublished)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetByID 根据 ID 获取文章
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Create 创建文章
func (s *PostService) Create(input CreatePostInput) (*models.Post, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	postType := strings.TrimSpace(input.Type)
	if postType == "" {
		postType = constants.PostTypeBlog
	}
	if postType != constants.PostTypeBlog && postType != constants.PostTypeNote {
		return nil, ErrInvalidPostType
	}

	count, err := s.postRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	post := &models.Post{
		Slug:        slug,
		Type:        postType,
		Title:       strings.TrimSpace(input.Title),
		Summary:     input.Summary,
		Content:     input.Content,
		CoverImage:  strings.TrimSpace(input.CoverImage),
		IsPublished: input.IsPublished,
	}
	if input.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	if err := s.applyTags(post, input.TagNames); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(post.ID)
}

// Update 更新文章
func (s *PostService) Update(id uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug != "" && slug != post.Slug {
			count, err := s.postRepo.CountBySlug(slug, &post.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrSlugExists
			}
			post.Slug = slug
		}
	}
	if input.Type != nil {
		postType := strings.TrimSpace(*input.Type)
		if postType != constants.PostTypeBlog && postType != constants.PostTypeNote {
			return nil, ErrInvalidPostType
		}
		post.Type = postType
	}
	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Summary != nil {
		post.Summary = *input.Summary
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.CoverImage != nil {
		post.CoverImage = strings.TrimSpace(*input.CoverImage)
	}
	if input.IsPublished != nil {
		if *input.IsPublished && !post.IsPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.IsPublished = *input.IsPublished
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	if input.TagNames != nil {
		if err := s.applyTags(post, input.TagNames); err != nil {
			return nil, err
		}
	}
	return s.postRepo.GetByID(post.ID)
}

// Delete 删除文章
func (s *PostService) Delete(id uint) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	return s.postRepo.Delete(id)
}

// RecordView 浏览计数
func (s *PostService) RecordView(id uint) {
	_ = s.postRepo.IncrementViewCount(id)
}

// applyTags 解析标签名并重置关联，缺失的标签自动创建
func (s *PostService) applyTags(post *models.Post, tagNames []string) error {
	tags, err := resolveTags(s.tagRepo, tagNames)
	if err != nil {
		return err
	}
	return s.postRepo.ReplaceTags(post, tags)
}
