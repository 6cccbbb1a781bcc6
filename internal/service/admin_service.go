package service

import (
	"context"
	"strings"

	"github.com/seungwoo505/portfolio-api/internal/authz"
	"github.com/seungwoo505/portfolio-api/internal/cache"
	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// AdminService 管理员账号管理服务
type AdminService struct {
	adminRepo repository.AdminRepository
	authSvc   *AuthService
	authzSvc  *authz.Service
}

// NewAdminService 创建管理员账号管理服务
func NewAdminService(adminRepo repository.AdminRepository, authSvc *AuthService, authzSvc *authz.Service) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		authSvc:   authSvc,
		authzSvc:  authzSvc,
	}
}

// CreateAdminInput 创建管理员输入
type CreateAdminInput struct {
	Username string
	Email    string
	Password string
	Role     string
	IsActive bool
}

// Create 创建管理员
func (s *AdminService) Create(input CreateAdminInput) (*models.Admin, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	role := strings.TrimSpace(input.Role)
	if !constants.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if len(input.Password) < 8 {
		return nil, ErrInvalidPassword
	}

	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := s.authSvc.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     input.IsActive,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdateAdminInput 更新管理员输入，nil 字段表示不变
type UpdateAdminInput struct {
	Email    *string
	Role     *string
	IsActive *bool
	Password *string
}

// Update 更新管理员
func (s *AdminService) Update(id uint, input UpdateAdminInput) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}

	if input.Role != nil {
		role := strings.TrimSpace(*input.Role)
		if !constants.ValidRole(role) {
			return nil, ErrInvalidRole
		}
		if admin.Role == constants.RoleSuperAdmin && role != constants.RoleSuperAdmin {
			if err := s.ensureNotLastSuperAdmin(admin.ID); err != nil {
				return nil, err
			}
		}
		admin.Role = role
	}
	if input.Email != nil {
		admin.Email = strings.TrimSpace(*input.Email)
	}
	if input.IsActive != nil {
		if admin.Role == constants.RoleSuperAdmin && !*input.IsActive {
			if err := s.ensureNotLastSuperAdmin(admin.ID); err != nil {
				return nil, err
			}
		}
		admin.IsActive = *input.IsActive
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, ErrInvalidPassword
		}
		hash, err := s.authSvc.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, nil
}

// Unlock 解除账号锁定并清零失败计数
func (s *AdminService) Unlock(id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	admin.FailedLoginAttempts = 0
	admin.LockedUntil = nil
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	_ = cache.DelAdminAuthState(context.Background(), admin.ID)
	return admin, nil
}

// Delete 删除管理员并清理其权限授予
func (s *AdminService) Delete(id uint) error {
	admin, err := s.adminRepo.GetByID(id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if admin.Role == constants.RoleSuperAdmin {
		if err := s.ensureNotLastSuperAdmin(admin.ID); err != nil {
			return err
		}
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return err
	}
	if s.authzSvc != nil {
		_ = s.authzSvc.RevokeAll(id)
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	return nil
}

// GetByID 获取管理员
func (s *AdminService) GetByID(id uint) (*models.Admin, error) {
	return s.adminRepo.GetByID(id)
}

// List 查询管理员列表
func (s *AdminService) List(filter repository.AdminListFilter) ([]models.Admin, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.adminRepo.List(filter)
}

// ensureNotLastSuperAdmin 防止降级/禁用/删除最后一名超级管理员
func (s *AdminService) ensureNotLastSuperAdmin(excludeID uint) error {
	active := true
	admins, _, err := s.adminRepo.List(repository.AdminListFilter{
		Role:     constants.RoleSuperAdmin,
		IsActive: &active,
		PageSize: 2,
	})
	if err != nil {
		return err
	}
	for _, a := range admins {
		if a.ID != excludeID {
			return nil
		}
	}
	return ErrLastSuperAdmin
}
