package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthErrorKind 认证错误类别
// 每个类别对应固定的 HTTP 状态码，handler 据此返回
type AuthErrorKind string

// 认证错误类别常量
const (
	AuthKindMissingToken           AuthErrorKind = "MissingToken"
	AuthKindInvalidToken           AuthErrorKind = "InvalidToken"
	AuthKindIPMismatch             AuthErrorKind = "IpMismatch"
	AuthKindInactiveAccount        AuthErrorKind = "InactiveAccount"
	AuthKindSessionExpired         AuthErrorKind = "SessionExpired"
	AuthKindAccountNotFound        AuthErrorKind = "AccountNotFound"
	AuthKindInvalidCredentials     AuthErrorKind = "InvalidCredentials"
	AuthKindAccountLocked          AuthErrorKind = "AccountLocked"
	AuthKindInsufficientPermission AuthErrorKind = "InsufficientPermission"
	AuthKindInsufficientRole       AuthErrorKind = "InsufficientRole"
	AuthKindInternalError          AuthErrorKind = "InternalError"
)

// HTTPStatus 类别对应的 HTTP 状态码
func (k AuthErrorKind) HTTPStatus() int {
	switch k {
	case AuthKindInsufficientPermission, AuthKindInsufficientRole:
		return http.StatusForbidden
	case AuthKindInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

// AuthError 带类别标签的认证错误
// 取代不透明的 invalid token 错误，调用方按 Kind 分支而不是匹配字符串
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	cause   error
}

// Error 实现 error 接口
func (e *AuthError) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap 返回底层错误
func (e *AuthError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 同类别视为相等，支持 errors.Is 哨兵比较
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return e != nil && e.Kind == t.Kind
}

// NewAuthError 创建认证错误
func NewAuthError(kind AuthErrorKind, message string) *AuthError {
	return &AuthError{Kind: kind, Message: message}
}

// WrapAuthError 创建带底层原因的认证错误
func WrapAuthError(kind AuthErrorKind, message string, cause error) *AuthError {
	return &AuthError{Kind: kind, Message: message, cause: cause}
}

// 认证错误哨兵，固定文案
var (
	ErrMissingToken       = NewAuthError(AuthKindMissingToken, "Authentication token is missing.")
	ErrInvalidToken       = NewAuthError(AuthKindInvalidToken, "Invalid token.")
	ErrIPMismatch         = NewAuthError(AuthKindIPMismatch, "Token was issued for a different client.")
	ErrInactiveAccount    = NewAuthError(AuthKindInactiveAccount, "Account is inactive or no longer exists.")
	ErrSessionExpired     = NewAuthError(AuthKindSessionExpired, "Session expired, please log in again.")
	ErrAccountNotFound    = NewAuthError(AuthKindAccountNotFound, "Account does not exist.")
	ErrInvalidCredentials = NewAuthError(AuthKindInvalidCredentials, "Invalid username or password.")
	ErrAccountLocked      = NewAuthError(AuthKindAccountLocked, "Account is locked due to repeated failures, try again later.")
	ErrInternalAuth       = NewAuthError(AuthKindInternalError, "Internal server error.")
)

// NewInsufficientPermissionError 403 错误，文案回显缺失的权限点
func NewInsufficientPermissionError(permission string) *AuthError {
	return NewAuthError(AuthKindInsufficientPermission,
		fmt.Sprintf("Missing required permission: %s.", permission))
}

// NewInsufficientRoleError 403 错误，文案回显要求的角色集合与实际角色
func NewInsufficientRoleError(required []string, actual string) *AuthError {
	return NewAuthError(AuthKindInsufficientRole,
		fmt.Sprintf("Requires role [%s], current role is %s.", strings.Join(required, ", "), actual))
}

// AuthErrorFrom 提取认证错误；其他错误统一包装为 InternalError
func AuthErrorFrom(err error) *AuthError {
	if err == nil {
		return nil
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	return WrapAuthError(AuthKindInternalError, "Internal server error.", err)
}
