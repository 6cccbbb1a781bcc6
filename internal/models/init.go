package models

import (
	"strings"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认超级管理员账号
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)

	// 如果已有管理员，确保默认 admin 仍为超级管理员
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("role", constants.RoleSuperAdmin).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	// 创建默认管理员
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	role := constants.RoleEditor
	if strings.EqualFold(strings.TrimSpace(username), "admin") {
		role = constants.RoleSuperAdmin
	}
	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}

// InitPermissionCatalog 初始化权限目录（幂等）
func InitPermissionCatalog() error {
	for name, group := range constants.PermissionCatalog {
		var count int64
		if err := DB.Model(&Permission{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		perm := Permission{
			Name:      name,
			Group:     group,
			CreatedAt: time.Now(),
		}
		if err := DB.Create(&perm).Error; err != nil {
			return err
		}
	}
	return nil
}
