package service

import (
	"github.com/seungwoo505/portfolio-api/internal/authz"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
)

// PermissionService 权限授予管理服务
// 权限目录来自 permissions 表，授予关系存储在 Casbin 策略行
type PermissionService struct {
	permRepo  repository.PermissionRepository
	adminRepo repository.AdminRepository
	authzSvc  *authz.Service
}

// NewPermissionService 创建权限授予管理服务
func NewPermissionService(permRepo repository.PermissionRepository, adminRepo repository.AdminRepository, authzSvc *authz.Service) *PermissionService {
	return &PermissionService{
		permRepo:  permRepo,
		adminRepo: adminRepo,
		authzSvc:  authzSvc,
	}
}

// Catalog 权限目录列表
func (s *PermissionService) Catalog() ([]models.Permission, error) {
	return s.permRepo.List()
}

// GrantsOf 查询管理员被授予的权限点
func (s *PermissionService) GrantsOf(adminID uint) ([]string, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return s.authzSvc.ListGrants(adminID)
}

// Grant 授予权限点，权限必须在目录中
func (s *PermissionService) Grant(adminID uint, permission string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if err := s.ensureInCatalog(permission); err != nil {
		return err
	}
	return s.authzSvc.Grant(adminID, permission)
}

// Revoke 撤销权限点
func (s *PermissionService) Revoke(adminID uint, permission string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	return s.authzSvc.Revoke(adminID, permission)
}

func (s *PermissionService) ensureInCatalog(permission string) error {
	normalized, err := authz.NormalizePermission(permission)
	if err != nil {
		return ErrUnknownPermission
	}
	perm, err := s.permRepo.GetByName(normalized)
	if err != nil {
		return err
	}
	if perm == nil {
		return ErrUnknownPermission
	}
	return nil
}
