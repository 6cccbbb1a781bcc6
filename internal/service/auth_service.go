package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/cache"
	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/logger"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenKindRefresh 刷新令牌类别标记；访问令牌不带 kind（隐式为非 refresh）
	TokenKindRefresh = "refresh"

	defaultAccessExpireMinutes = 30
	defaultRefreshExpireHours  = 12
	defaultLoginMaxFailures    = 5
	defaultLockoutMinutes      = 30
)

// JWTClaims JWT 声明
// IP 为签发时的客户端 IP，校验时必须一致
type JWTClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IP       string `json:"ip"`
	Kind     string `json:"kind,omitempty"`
	jwt.RegisteredClaims
}

// AuthService 认证服务
// 签发与校验访问/刷新令牌，编排登录流程与账号级失败锁定
type AuthService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpire  time.Duration
	refreshExpire time.Duration
	maxFailures   int
	lockout       time.Duration
	adminRepo     repository.AdminRepository
}

// NewAuthService 创建认证服务实例
// 密钥在构造时注入；刷新密钥缺省回退为访问密钥
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	accessExpireMinutes := defaultAccessExpireMinutes
	refreshExpireHours := defaultRefreshExpireHours
	maxFailures := defaultLoginMaxFailures
	lockoutMinutes := defaultLockoutMinutes
	var accessSecret, refreshSecret string
	if cfg != nil {
		accessSecret = cfg.JWT.AccessSecret
		refreshSecret = cfg.JWT.EffectiveRefreshSecret()
		if cfg.JWT.AccessExpireMinutes > 0 {
			accessExpireMinutes = cfg.JWT.AccessExpireMinutes
		}
		if cfg.JWT.RefreshExpireHours > 0 {
			refreshExpireHours = cfg.JWT.RefreshExpireHours
		}
		if cfg.Security.LoginThrottle.MaxFailures > 0 {
			maxFailures = cfg.Security.LoginThrottle.MaxFailures
		}
		if cfg.Security.LoginThrottle.LockoutMinutes > 0 {
			lockoutMinutes = cfg.Security.LoginThrottle.LockoutMinutes
		}
	}
	return &AuthService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpire:  time.Duration(accessExpireMinutes) * time.Minute,
		refreshExpire: time.Duration(refreshExpireHours) * time.Hour,
		maxFailures:   maxFailures,
		lockout:       time.Duration(lockoutMinutes) * time.Minute,
		adminRepo:     adminRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// IssueAccessToken 签发访问令牌（绑定客户端 IP）
func (s *AuthService) IssueAccessToken(admin *models.Admin, clientIP string) (string, time.Time, error) {
	return s.issueToken(admin, clientIP, "", s.accessSecret, s.accessExpire)
}

// IssueRefreshToken 签发刷新令牌（kind=refresh，绑定客户端 IP）
func (s *AuthService) IssueRefreshToken(admin *models.Admin, clientIP string) (string, time.Time, error) {
	return s.issueToken(admin, clientIP, TokenKindRefresh, s.refreshSecret, s.refreshExpire)
}

func (s *AuthService) issueToken(admin *models.Admin, clientIP, kind string, secret []byte, expire time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expire)

	claims := JWTClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
		IP:       strings.TrimSpace(clientIP),
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyAccessToken 校验访问令牌
// 解码失败（含过期、签名错误、kind 误用）统一归为 InvalidToken
// IP 不一致单独返回 IpMismatch，便于排障
func (s *AuthService) VerifyAccessToken(tokenString, clientIP string) (*JWTClaims, error) {
	claims, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return nil, err
	}
	if claims.Kind == TokenKindRefresh {
		return nil, ErrInvalidToken
	}
	if claims.IP != strings.TrimSpace(clientIP) {
		return nil, ErrIPMismatch
	}
	return claims, nil
}

// VerifyRefreshToken 校验刷新令牌
// 必须带 kind=refresh，访问令牌不能走刷新通道
func (s *AuthService) VerifyRefreshToken(tokenString, clientIP string) (*JWTClaims, error) {
	claims, err := s.parseToken(tokenString, s.refreshSecret)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindRefresh {
		return nil, ErrInvalidToken
	}
	if claims.IP != strings.TrimSpace(clientIP) {
		return nil, ErrIPMismatch
	}
	return claims, nil
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, WrapAuthError(AuthKindInvalidToken, "Invalid token.", err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Login 管理员登录编排
// 查找启用账号 → 锁定检查（不验密码）→ 验密码（失败计数）→ 成功重置并签发双令牌
func (s *AuthService) Login(login, password, clientIP string) (*models.Admin, string, string, error) {
	admin, err := s.adminRepo.GetActiveByLogin(strings.TrimSpace(login))
	if err != nil {
		return nil, "", "", WrapAuthError(AuthKindInternalError, "Internal server error.", err)
	}
	if admin == nil {
		return nil, "", "", ErrAccountNotFound
	}

	now := time.Now()
	if admin.IsLocked(now) {
		// 锁定窗口内直接拒绝，不触碰密码校验，锁定中的账号无法被探测口令
		return nil, "", "", ErrAccountLocked
	}

	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		if recordErr := s.recordFailure(admin, now); recordErr != nil {
			logger.Warnw("login_failure_record_failed", "admin_id", admin.ID, "error", recordErr)
		}
		return nil, "", "", ErrInvalidCredentials
	}

	if err := s.recordSuccess(admin, clientIP, now); err != nil {
		return nil, "", "", WrapAuthError(AuthKindInternalError, "Internal server error.", err)
	}

	accessToken, _, err := s.IssueAccessToken(admin, clientIP)
	if err != nil {
		return nil, "", "", WrapAuthError(AuthKindInternalError, "Internal server error.", err)
	}
	refreshToken, _, err := s.IssueRefreshToken(admin, clientIP)
	if err != nil {
		return nil, "", "", WrapAuthError(AuthKindInternalError, "Internal server error.", err)
	}

	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))

	return admin, accessToken, refreshToken, nil
}

// recordFailure 失败计数；达到阈值（第 maxFailures 次连续失败）时写入锁定截止时间
// 读取-自增-写回未加行级锁，并发失败登录下计数可能偏小，锁定可能晚于名义阈值
func (s *AuthService) recordFailure(admin *models.Admin, now time.Time) error {
	if admin.FailedLoginAttempts >= s.maxFailures-1 {
		lockedUntil := now.Add(s.lockout)
		admin.LockedUntil = &lockedUntil
	}
	admin.FailedLoginAttempts++
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), admin.ID)
	return nil
}

// recordSuccess 成功登录：清零计数、解除锁定、记录最后登录时间与 IP
func (s *AuthService) recordSuccess(admin *models.Admin, clientIP string, now time.Time) error {
	admin.FailedLoginAttempts = 0
	admin.LockedUntil = nil
	admin.LastLoginAt = &now
	admin.LastLoginIP = strings.TrimSpace(clientIP)
	return s.adminRepo.Update(admin)
}

// Refresh 用刷新令牌换发新的访问令牌
// 令牌有效后仍需账号存在且启用
func (s *AuthService) Refresh(refreshToken, clientIP string) (*models.Admin, string, error) {
	claims, err := s.VerifyRefreshToken(refreshToken, clientIP)
	if err != nil {
		return nil, "", err
	}

	admin, err := s.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		return nil, "", WrapAuthError(AuthKindInternalError, "Internal server error.", err)
	}
	if admin == nil || !admin.IsActive {
		return nil, "", ErrInactiveAccount
	}

	accessToken, _, err := s.IssueAccessToken(admin, clientIP)
	if err != nil {
		return nil, "", WrapAuthError(AuthKindInternalError, "Internal server error.", err)
	}
	return admin, accessToken, nil
}

// Logout 登出（无状态令牌，仅清理鉴权快照缓存）
func (s *AuthService) Logout(adminID uint) {
	_ = cache.DelAdminAuthState(context.Background(), adminID)
}

// ChangePassword 修改管理员密码
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if len(newPassword) < 8 {
		return ErrInvalidPassword
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	admin.PasswordHash = hashedPassword
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return nil
}

// LoadAuthState 读取管理员鉴权快照，缓存未命中时回源数据库
func (s *AuthService) LoadAuthState(ctx context.Context, adminID uint) (*cache.AdminAuthState, error) {
	state, hit, err := cache.GetAdminAuthState(ctx, adminID)
	if err != nil {
		logger.Warnw("auth_state_cache_read_failed", "admin_id", adminID, "error", err)
	}
	if hit && state != nil {
		return state, nil
	}

	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}
	state = cache.BuildAdminAuthState(admin)
	if cacheErr := cache.SetAdminAuthState(ctx, state); cacheErr != nil {
		logger.Warnw("auth_state_cache_write_failed", "admin_id", adminID, "error", cacheErr)
	}
	return state, nil
}

// IsAuthError 判断是否为认证错误
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
