package utils

import (
	"site-cms/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"` // 详细错误信息（可选）
	Fields  map[string]string `json:"fields,omitempty"` // 字段级错误（可选）
	Data    interface{}       `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Code:    errors.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
// 底层错误通过 c.Error 交给日志中间件记录, 不直接暴露给调用方
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	if appErr, ok := errors.As(err); ok {
		// 统一返回HTTP 200，业务错误码在response.code中
		c.JSON(200, Response{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
		return
	}

	c.JSON(200, Response{
		Code:    errors.CodeInternalError,
		Message: errors.ErrInternalError.Message,
	})
}

// ErrorWithCode 自定义错误响应
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(200, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetail 带详细信息的错误响应
func ErrorWithDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(200, Response{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}
