package service

import (
	"strings"

	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// SettingService 站点设置服务
type SettingService struct {
	settingRepo repository.SettingRepository
}

// NewSettingService 创建站点设置服务
func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// Get 获取设置
func (s *SettingService) Get(key string) (*models.Setting, error) {
	setting, err := s.settingRepo.GetByKey(strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrNotFound
	}
	return setting, nil
}

// GetValue 获取设置值，缺失时返回空 JSON
func (s *SettingService) GetValue(key string) (models.JSON, error) {
	setting, err := s.settingRepo.GetByKey(strings.TrimSpace(key))
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.ValueJSON == nil {
		return models.JSON{}, nil
	}
	return setting.ValueJSON, nil
}

// PublicSettings 获取全部可匿名读取的设置（key → value）
func (s *SettingService) PublicSettings() (map[string]models.JSON, error) {
	settings, err := s.settingRepo.ListPublic()
	if err != nil {
		return nil, err
	}
	result := make(map[string]models.JSON, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.ValueJSON
	}
	return result, nil
}

// Upsert 更新或创建设置
func (s *SettingService) Upsert(key string, value models.JSON, isPublic bool) (*models.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNotFound
	}
	return s.settingRepo.Upsert(key, value, isPublic)
}
