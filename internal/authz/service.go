package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	adminSubjectFmt = "admin:%d"
)

const defaultGrantModel = `
[request_definition]
r = sub, perm

[policy_definition]
p = sub, perm

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.perm == p.perm
`

// Grant 权限授予记录
type Grant struct {
	AdminID    uint   `json:"admin_id"`
	Permission string `json:"permission"`
}

// Service 权限授予服务
// 以 Casbin 策略行存储每个管理员被授予的权限点
// 超级管理员绕过在守卫层完成，本服务只负责第二层的授予判定
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建权限授予服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultGrantModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforcer 返回底层 enforcer（供授权管理模块复用）
func (s *Service) Enforcer() *casbin.SyncedEnforcer {
	if s == nil {
		return nil
	}
	return s.enforcer
}

// HasPermission 判定管理员是否被授予指定权限点
func (s *Service) HasPermission(adminID uint, permission string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	normalized, err := NormalizePermission(permission)
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(SubjectForAdmin(adminID), normalized)
}

// Grant 授予管理员权限点（幂等）
func (s *Service) Grant(adminID uint, permission string) error {
	if adminID == 0 {
		return fmt.Errorf("admin id is required")
	}
	normalized, err := NormalizePermission(permission)
	if err != nil {
		return err
	}
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if _, err := s.enforcer.AddPolicy(SubjectForAdmin(adminID), normalized); err != nil {
		return fmt.Errorf("grant permission failed: %w", err)
	}
	return nil
}

// Revoke 撤销管理员权限点（幂等）
func (s *Service) Revoke(adminID uint, permission string) error {
	if adminID == 0 {
		return fmt.Errorf("admin id is required")
	}
	normalized, err := NormalizePermission(permission)
	if err != nil {
		return err
	}
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if _, err := s.enforcer.RemovePolicy(SubjectForAdmin(adminID), normalized); err != nil {
		return fmt.Errorf("revoke permission failed: %w", err)
	}
	return nil
}

// RevokeAll 撤销管理员全部权限点（删号时清理）
func (s *Service) RevokeAll(adminID uint) error {
	if adminID == 0 {
		return fmt.Errorf("admin id is required")
	}
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(0, SubjectForAdmin(adminID)); err != nil {
		return fmt.Errorf("revoke all permissions failed: %w", err)
	}
	return nil
}

// ListGrants 查询管理员被授予的权限点
func (s *Service) ListGrants(adminID uint) ([]string, error) {
	if adminID == 0 {
		return nil, fmt.Errorf("admin id is required")
	}
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, SubjectForAdmin(adminID))
	if err != nil {
		return nil, fmt.Errorf("list grants failed: %w", err)
	}
	perms := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 2 {
			continue
		}
		perms = append(perms, rule[1])
	}
	sort.Strings(perms)
	return perms, nil
}

// ReloadPolicy 重新加载策略
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}

// SubjectForAdmin 生成管理员主体标识
func SubjectForAdmin(adminID uint) string {
	return fmt.Sprintf(adminSubjectFmt, adminID)
}

// NormalizePermission 统一权限点名称
func NormalizePermission(permission string) (string, error) {
	normalized := strings.TrimSpace(strings.ToLower(permission))
	if normalized == "" {
		return "", fmt.Errorf("permission is required")
	}
	return normalized, nil
}
