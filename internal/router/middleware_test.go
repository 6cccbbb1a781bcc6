package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seungwoo505/portfolio-api/internal/authz"
	"github.com/seungwoo505/portfolio-api/internal/config"
	"github.com/seungwoo505/portfolio-api/internal/constants"
	"github.com/seungwoo505/portfolio-api/internal/models"
	"github.com/seungwoo505/portfolio-api/internal/repository"
	"github.com/seungwoo505/portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// httptest.NewRequest 的默认远端地址
const testClientIP = "192.0.2.1"

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func setupAuthGateTest(t *testing.T) (*service.AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:router_gate_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
			AccessSecret:        "router-gate-test-secret",
			AccessExpireMinutes: 30,
			RefreshExpireHours:  12,
		},
	}
	return service.NewAuthService(cfg, repository.NewAdminRepository(db)), db
}

func seedGateAdmin(t *testing.T, db *gorm.DB, username, role string, isActive bool) *models.Admin {
	t.Helper()
	admin := models.Admin{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "unused",
		Role:         role,
		IsActive:     isActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &admin
}

func newGateRouter(authSvc *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthGateMiddleware(authSvc, nil))
	r.GET("/ping", func(c *gin.Context) {
		adminID, role, _ := currentAdmin(c)
		c.JSON(http.StatusOK, gin.H{"admin_id": adminID, "role": role})
	})
	return r
}

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		got, ok := extractBearerToken(c)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("header %q: want (%q, %v) got (%q, %v)", tc.header, tc.want, tc.ok, got, ok)
		}
	}
}

func TestAuthGateMissingToken(t *testing.T) {
	authSvc, _ := setupAuthGateTest(t)
	r := newGateRouter(authSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Error != string(service.AuthKindMissingToken) {
		t.Fatalf("error kind want MissingToken got %s", resp.Error)
	}
}

func TestAuthGateValidToken(t *testing.T) {
	authSvc, db := setupAuthGateTest(t)
	admin := seedGateAdmin(t, db, "gatekeeper", constants.RoleAdmin, true)
	token, _, err := authSvc.IssueAccessToken(admin, testClientIP)
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}

	r := newGateRouter(authSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AdminID uint   `json:"admin_id"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.AdminID != admin.ID || resp.Role != constants.RoleAdmin {
		t.Fatalf("context identity want (%d, %s) got (%d, %s)", admin.ID, constants.RoleAdmin, resp.AdminID, resp.Role)
	}
}

func TestAuthGateIPMismatchSkipsSilentRefresh(t *testing.T) {
	authSvc, db := setupAuthGateTest(t)
	admin := seedGateAdmin(t, db, "roaming", constants.RoleAdmin, true)
	token, _, err := authSvc.IssueAccessToken(admin, "10.0.0.9")
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}
	refreshToken, _, err := authSvc.IssueRefreshToken(admin, testClientIP)
	if err != nil {
		t.Fatalf("issue refresh token failed: %v", err)
	}

	r := newGateRouter(authSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(refreshTokenHeader, refreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Error != string(service.AuthKindIPMismatch) {
		t.Fatalf("error kind want IpMismatch got %s", resp.Error)
	}
	if w.Header().Get(newTokenHeader) != "" {
		t.Fatalf("IP mismatch must not trigger a silent refresh")
	}
}

func TestAuthGateSilentRefresh(t *testing.T) {
	authSvc, db := setupAuthGateTest(t)
	admin := seedGateAdmin(t, db, "refresher", constants.RoleAdmin, true)
	refreshToken, _, err := authSvc.IssueRefreshToken(admin, testClientIP)
	if err != nil {
		t.Fatalf("issue refresh token failed: %v", err)
	}

	r := newGateRouter(authSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	req.Header.Set(refreshTokenHeader, refreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d, body %s", w.Code, w.Body.String())
	}
	newToken := w.Header().Get(newTokenHeader)
	if newToken == "" {
		t.Fatalf("silent refresh should set %s header", newTokenHeader)
	}
	claims, err := authSvc.VerifyAccessToken(newToken, testClientIP)
	if err != nil {
		t.Fatalf("reissued token should verify as access token: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("reissued token admin id want %d got %d", admin.ID, claims.AdminID)
	}
}

func TestAuthGateExpiredWithoutRefreshHeader(t *testing.T) {
	authSvc, _ := setupAuthGateTest(t)
	r := newGateRouter(authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Error != string(service.AuthKindSessionExpired) {
		t.Fatalf("error kind want SessionExpired got %s", resp.Error)
	}
}

func TestAuthGateInvalidRefreshToken(t *testing.T) {
	authSvc, db := setupAuthGateTest(t)
	admin := seedGateAdmin(t, db, "stale", constants.RoleAdmin, true)
	// 访问令牌不能冒充刷新令牌
	accessToken, _, err := authSvc.IssueAccessToken(admin, testClientIP)
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}

	r := newGateRouter(authSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	req.Header.Set(refreshTokenHeader, accessToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Error != string(service.AuthKindSessionExpired) {
		t.Fatalf("error kind want SessionExpired got %s", resp.Error)
	}
}

func TestAuthGateInactiveAccount(t *testing.T) {
	authSvc, db := setupAuthGateTest(t)
	admin := seedGateAdmin(t, db, "disabled", constants.RoleAdmin, false)
	token, _, err := authSvc.IssueAccessToken(admin, testClientIP)
	if err != nil {
		t.Fatalf("issue access token failed: %v", err)
	}

	r := newGateRouter(authSvc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Error != string(service.AuthKindInactiveAccount) {
		t.Fatalf("error kind want InactiveAccount got %s", resp.Error)
	}
}

// identityMiddleware 测试用，模拟鉴权网关写入的身份上下文
func identityMiddleware(adminID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(adminIDContextKey, adminID)
		c.Set(adminUsernameContextKey, "tester")
		c.Set(adminRoleContextKey, role)
		c.Next()
	}
}

func setupAuthzGuardTest(t *testing.T) *authz.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:router_guard_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func newGuardRouter(identity gin.HandlerFunc, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identity != nil {
		r.Use(identity)
	}
	r.GET("/guarded", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequirePermissionSuperAdminBypass(t *testing.T) {
	r := newGuardRouter(
		identityMiddleware(1, constants.RoleSuperAdmin),
		RequirePermission(nil, constants.PermPostWrite),
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("super admin should bypass grant checks, got %d", w.Code)
	}
}

func TestRequirePermissionDenied(t *testing.T) {
	authzSvc := setupAuthzGuardTest(t)
	r := newGuardRouter(
		identityMiddleware(7, constants.RoleAdmin),
		RequirePermission(authzSvc, constants.PermPostWrite),
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error != string(service.AuthKindInsufficientPermission) {
		t.Fatalf("error kind want InsufficientPermission got %s", resp.Error)
	}
	if !strings.Contains(resp.Message, constants.PermPostWrite) {
		t.Fatalf("message should echo missing permission, got %q", resp.Message)
	}
}

func TestRequirePermissionGranted(t *testing.T) {
	authzSvc := setupAuthzGuardTest(t)
	if err := authzSvc.Grant(7, constants.PermPostWrite); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	r := newGuardRouter(
		identityMiddleware(7, constants.RoleAdmin),
		RequirePermission(authzSvc, constants.PermPostWrite),
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("granted permission should pass, got %d body %s", w.Code, w.Body.String())
	}
}

func TestRequirePermissionWithoutIdentity(t *testing.T) {
	r := newGuardRouter(nil, RequirePermission(nil, constants.PermPostWrite))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Error != string(service.AuthKindMissingToken) {
		t.Fatalf("error kind want MissingToken got %s", resp.Error)
	}
}

func TestAccountManagementGuardRejectsPlainAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 与账号管理路由相同的守卫链：普通 admin 不得管理账号与授权
	r := gin.New()
	r.Use(identityMiddleware(9, constants.RoleAdmin))
	accounts := r.Group("")
	accounts.Use(RequireRole(constants.RoleSuperAdmin))
	accounts.POST("/admins", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reached": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admins", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("plain admin should be denied account management, got %d body %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Error != string(service.AuthKindInsufficientRole) {
		t.Fatalf("error kind want InsufficientRole got %s", resp.Error)
	}
	if strings.Contains(w.Body.String(), "reached") {
		t.Fatalf("handler must not run after guard denial")
	}

	// 超级管理员照常通过
	r2 := gin.New()
	r2.Use(identityMiddleware(1, constants.RoleSuperAdmin))
	accounts2 := r2.Group("")
	accounts2.Use(RequireRole(constants.RoleSuperAdmin))
	accounts2.POST("/admins", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reached": true})
	})
	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/admins", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("super admin should pass account management guard, got %d", w2.Code)
	}
}

func TestRequireRole(t *testing.T) {
	// 匹配角色放行
	r := newGuardRouter(identityMiddleware(3, constants.RoleAdmin), RequireRole(constants.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("matching role should pass, got %d", w.Code)
	}

	// 超级管理员恒通过
	r = newGuardRouter(identityMiddleware(1, constants.RoleSuperAdmin), RequireRole(constants.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("super admin should always pass, got %d", w.Code)
	}

	// 角色不足返回 403 并回显要求
	r = newGuardRouter(identityMiddleware(5, constants.RoleEditor), RequireRole(constants.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error != string(service.AuthKindInsufficientRole) {
		t.Fatalf("error kind want InsufficientRole got %s", resp.Error)
	}
	if !strings.Contains(resp.Message, constants.RoleAdmin) || !strings.Contains(resp.Message, constants.RoleEditor) {
		t.Fatalf("message should echo required and actual role, got %q", resp.Message)
	}
}
