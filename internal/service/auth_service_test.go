package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, repository.AdminRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:        "auth-service-test-secret",
			AccessExpireMinutes: 30,
			RefreshExpireHours:  12,
		},
		Security: config.SecurityConfig{
			LoginThrottle: config.LoginThrottleConfig{
				MaxFailures:    5,
				LockoutMinutes: 30,
			},
		},
	}
	adminRepo := repository.NewAdminRepository(db)
	return NewAuthService(cfg, adminRepo), adminRepo, db
}

func seedAuthAdmin(t *testing.T, svc *AuthService, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := models.Admin{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &admin
}

func TestLoginSuccessIssuesVerifiableTokens(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	seedAuthAdmin(t, svc, db, "alice", "correct-horse-1")

	admin, accessToken, refreshToken, err := svc.Login("alice", "correct-horse-1", "10.0.0.1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatalf("expected both tokens, got access=%q refresh=%q", accessToken, refreshToken)
	}
	if admin.LastLoginAt == nil || admin.LastLoginIP != "10.0.0.1" {
		t.Fatalf("expected last login stamped, got at=%v ip=%q", admin.LastLoginAt, admin.LastLoginIP)
	}

	claims, err := svc.VerifyAccessToken(accessToken, "10.0.0.1")
	if err != nil {
		t.Fatalf("verify access token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Kind != "" {
		t.Fatalf("access token must not carry kind, got: %q", claims.Kind)
	}

	refreshClaims, err := svc.VerifyRefreshToken(refreshToken, "10.0.0.1")
	if err != nil {
		t.Fatalf("verify refresh token failed: %v", err)
	}
	if refreshClaims.Kind != TokenKindRefresh {
		t.Fatalf("expected kind=refresh, got: %q", refreshClaims.Kind)
	}
}

func TestLoginByEmail(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	seedAuthAdmin(t, svc, db, "bob", "correct-horse-1")

	if _, _, _, err := svc.Login("bob@example.com", "correct-horse-1", "10.0.0.1"); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	_, _, _, err := svc.Login("ghost", "whatever", "10.0.0.1")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got: %v", err)
	}
}

func TestLoginInactiveAccountNotFound(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "carol", "correct-horse-1")
	if err := db.Model(&models.Admin{}).Where("id = ?", admin.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate admin failed: %v", err)
	}

	_, _, _, err := svc.Login("carol", "correct-horse-1", "10.0.0.1")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for inactive account, got: %v", err)
	}
}

func TestLoginFifthFailureLocksAccount(t *testing.T) {
	svc, adminRepo, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "dave", "correct-horse-1")

	for i := 0; i < 5; i++ {
		_, _, _, err := svc.Login("dave", "wrong-password", "10.0.0.1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got: %v", i+1, err)
		}
	}

	stored, err := adminRepo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if stored.FailedLoginAttempts != 5 {
		t.Fatalf("expected 5 failed attempts, got: %d", stored.FailedLoginAttempts)
	}
	if stored.LockedUntil == nil || !stored.LockedUntil.After(time.Now()) {
		t.Fatalf("expected future locked_until, got: %v", stored.LockedUntil)
	}

	// 锁定期内即使密码正确也拒绝
	_, _, _, err = svc.Login("dave", "correct-horse-1", "10.0.0.1")
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got: %v", err)
	}
}

func TestLoginFourFailuresDoNotLock(t *testing.T) {
	svc, adminRepo, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "erin", "correct-horse-1")

	for i := 0; i < 4; i++ {
		if _, _, _, err := svc.Login("erin", "wrong-password", "10.0.0.1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got: %v", i+1, err)
		}
	}

	stored, err := adminRepo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if stored.LockedUntil != nil {
		t.Fatalf("expected no lock after 4 failures, got locked_until=%v", stored.LockedUntil)
	}

	if _, _, _, err := svc.Login("erin", "correct-horse-1", "10.0.0.1"); err != nil {
		t.Fatalf("login after 4 failures should succeed, got: %v", err)
	}
}

func TestLoginSuccessResetsFailureState(t *testing.T) {
	svc, adminRepo, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "frank", "correct-horse-1")

	for i := 0; i < 3; i++ {
		_, _, _, _ = svc.Login("frank", "wrong-password", "10.0.0.1")
	}
	if _, _, _, err := svc.Login("frank", "correct-horse-1", "10.0.0.1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	stored, err := adminRepo.GetByID(admin.ID)
	if err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if stored.FailedLoginAttempts != 0 || stored.LockedUntil != nil {
		t.Fatalf("expected reset state, got attempts=%d locked_until=%v", stored.FailedLoginAttempts, stored.LockedUntil)
	}
}

func TestLoginExpiredLockAllowsRetry(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "grace", "correct-horse-1")

	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Admin{}).Where("id = ?", admin.ID).
		Updates(map[string]interface{}{"failed_login_attempts": 5, "locked_until": past}).Error; err != nil {
		t.Fatalf("seed lock state failed: %v", err)
	}

	if _, _, _, err := svc.Login("grace", "correct-horse-1", "10.0.0.1"); err != nil {
		t.Fatalf("login after lock expiry failed: %v", err)
	}
}

func TestVerifyAccessTokenIPMismatch(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "henry", "correct-horse-1")

	token, _, err := svc.IssueAccessToken(admin, "10.0.0.1")
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}

	_, err = svc.VerifyAccessToken(token, "10.0.0.2")
	if !errors.Is(err, ErrIPMismatch) {
		t.Fatalf("expected ErrIPMismatch, got: %v", err)
	}
}

func TestTokenKindCrossUseRejected(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "iris", "correct-horse-1")

	accessToken, _, err := svc.IssueAccessToken(admin, "10.0.0.1")
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}
	refreshToken, _, err := svc.IssueRefreshToken(admin, "10.0.0.1")
	if err != nil {
		t.Fatalf("issue refresh token failed: %v", err)
	}

	if _, err := svc.VerifyAccessToken(refreshToken, "10.0.0.1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token on access path: expected ErrInvalidToken, got: %v", err)
	}
	if _, err := svc.VerifyRefreshToken(accessToken, "10.0.0.1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token on refresh path: expected ErrInvalidToken, got: %v", err)
	}
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	if _, err := svc.VerifyAccessToken("not-a-jwt", "10.0.0.1"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "judy", "correct-horse-1")

	refreshToken, _, err := svc.IssueRefreshToken(admin, "10.0.0.1")
	if err != nil {
		t.Fatalf("issue refresh token failed: %v", err)
	}

	refreshed, accessToken, err := svc.Refresh(refreshToken, "10.0.0.1")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.ID != admin.ID {
		t.Fatalf("expected admin %d, got: %d", admin.ID, refreshed.ID)
	}
	if _, err := svc.VerifyAccessToken(accessToken, "10.0.0.1"); err != nil {
		t.Fatalf("new access token failed verification: %v", err)
	}
}

func TestRefreshRejectsInactiveAccount(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "kate", "correct-horse-1")

	refreshToken, _, err := svc.IssueRefreshToken(admin, "10.0.0.1")
	if err != nil {
		t.Fatalf("issue refresh token failed: %v", err)
	}
	if err := db.Model(&models.Admin{}).Where("id = ?", admin.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate admin failed: %v", err)
	}

	_, _, err = svc.Refresh(refreshToken, "10.0.0.1")
	if !errors.Is(err, ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got: %v", err)
	}
}

func TestRefreshSecretDefaultsToAccessSecret(t *testing.T) {
	cfg := config.JWTConfig{AccessSecret: "only-access-secret"}
	if cfg.EffectiveRefreshSecret() != "only-access-secret" {
		t.Fatalf("expected fallback to access secret, got: %q", cfg.EffectiveRefreshSecret())
	}

	cfg.RefreshSecret = "dedicated-refresh-secret"
	if cfg.EffectiveRefreshSecret() != "dedicated-refresh-secret" {
		t.Fatalf("expected dedicated refresh secret, got: %q", cfg.EffectiveRefreshSecret())
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, db := setupAuthServiceTest(t)
	admin := seedAuthAdmin(t, svc, db, "lena", "correct-horse-1")

	if err := svc.ChangePassword(admin.ID, "wrong-old", "new-password-1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for wrong old password, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "correct-horse-1", "short"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for short password, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "correct-horse-1", "new-password-1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("lena", "new-password-1", "10.0.0.1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthErrorKindMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrMissingToken, 401},
		{ErrInvalidToken, 401},
		{ErrIPMismatch, 401},
		{ErrInactiveAccount, 401},
		{ErrSessionExpired, 401},
		{ErrAccountNotFound, 401},
		{ErrInvalidCredentials, 401},
		{ErrAccountLocked, 401},
		{NewInsufficientPermissionError("post:write"), 403},
		{NewInsufficientRoleError([]string{"admin"}, "editor"), 403},
		{ErrInternalAuth, 500},
	}
	for _, tc := range cases {
		authErr := AuthErrorFrom(tc.err)
		if authErr == nil {
			t.Fatalf("expected auth error for %v", tc.err)
		}
		if authErr.Kind.HTTPStatus() != tc.status {
			t.Fatalf("kind %s: expected status %d, got %d", authErr.Kind, tc.status, authErr.Kind.HTTPStatus())
		}
	}
}
