package service

import "errors"

// 业务错误定义，handler 层通过 errors.Is 分派
var (
	ErrNotFound          = errors.New("record not found")
	ErrSlugExists        = errors.New("slug already exists")
	ErrInvalidSlug       = errors.New("invalid slug")
	ErrInvalidTagName    = errors.New("invalid tag name")
	ErrInvalidPostType   = errors.New("invalid post type")
	ErrInvalidRole       = errors.New("invalid role")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrTagExists         = errors.New("tag already exists")
	ErrUnknownPermission = errors.New("unknown permission")
	ErrLastSuperAdmin    = errors.New("cannot remove the last super admin")
	ErrCaptchaInvalid    = errors.New("captcha verify failed")
	ErrCaptchaRequired   = errors.New("captcha is required")
	ErrCaptchaDisabled   = errors.New("captcha is not enabled")
)
