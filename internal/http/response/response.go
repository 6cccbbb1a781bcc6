package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`         // 业务是否成功
	Message string      `json:"message"`         // 提示消息
	Data    interface{} `json:"data"`            // 数据内容
	Error   string      `json:"error,omitempty"` // 错误类别标识（失败时）
}

// PageResponse 分页响应结构
type PageResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Success:    true,
		Message:    "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应，status 为真实 HTTP 状态码
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{
		Success: false,
		Message: msg,
		Data:    attachRequestID(c, nil),
	})
}

// ErrorWithKind 错误响应，附带错误类别标识
func ErrorWithKind(c *gin.Context, status int, kind, msg string) {
	c.JSON(status, Response{
		Success: false,
		Message: msg,
		Data:    attachRequestID(c, nil),
		Error:   kind,
	})
}

// AbortWithKind 错误响应并终止后续 handler（守卫链用）
func AbortWithKind(c *gin.Context, status int, kind, msg string) {
	ErrorWithKind(c, status, kind, msg)
	c.Abort()
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

// Unauthorized 401 响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, msg)
}

// Forbidden 403 响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, msg)
}

// NotFound 404 响应
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

// TooManyRequests 429 响应
func TooManyRequests(c *gin.Context, msg string) {
	Error(c, http.StatusTooManyRequests, msg)
}

// Internal 500 响应
func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, msg)
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return data
	}
	if data == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := data.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return data
	}
}
