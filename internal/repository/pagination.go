package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数
// pageSize 非正数时视为不分页，page 非法时回落到第一页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
