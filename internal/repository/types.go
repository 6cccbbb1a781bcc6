package repository

import "time"

// PostListFilter 文章列表查询条件
type PostListFilter struct {
	OnlyPublished bool
	Type          string
	TagSlug       string
	Search        string
	Page          int
	PageSize      int
	OrderBy       string
}

// ProjectListFilter 项目列表查询条件
type ProjectListFilter struct {
	OnlyPublished bool
	TagSlug       string
	Search        string
	Page          int
	PageSize      int
}

// AdminListFilter 管理员列表查询条件
type AdminListFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

// AdminLoginLogListFilter 登录日志查询条件
type AdminLoginLogListFilter struct {
	AdminID     uint
	Username    string
	Event       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}
