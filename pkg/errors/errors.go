package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// 错误码
const (
	CodeSuccess         = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeValidationError = 422
	CodeInternalError   = 500
	CodeDatabaseError   = 501
	CodeAuthError       = 502
	CodeStorageError    = 507
)

// AppError 应用错误
type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // 字段级校验错误: 字段 -> 信息
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidation 创建字段级校验错误, Message 为可读的汇总信息
func NewValidation(fields map[string]string) *AppError {
	return &AppError{
		Code:    CodeValidationError,
		Message: Summarize(fields),
		Fields:  fields,
	}
}

// Summarize 将字段错误按字段名排序拼接成一句话
func Summarize(fields map[string]string) string {
	if len(fields) == 0 {
		return "数据验证失败"
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return "数据验证失败: " + strings.Join(parts, "; ")
}

// As 提取错误链中的 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode 判断错误链中是否存在指定错误码的 AppError
func IsCode(err error, code int) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// 预定义错误
var (
	ErrBadRequest      = New(CodeBadRequest, "请求参数错误")
	ErrUnauthorized    = New(CodeUnauthorized, "未授权")
	ErrForbidden       = New(CodeForbidden, "禁止访问")
	ErrNotFound        = New(CodeNotFound, "资源不存在")
	ErrConflict        = New(CodeConflict, "资源冲突")
	ErrInternalError   = New(CodeInternalError, "内部服务器错误")
	ErrDatabaseError   = New(CodeDatabaseError, "数据库错误")
	ErrAuthError       = New(CodeAuthError, "认证失败")
	ErrValidationError = New(CodeValidationError, "数据验证失败")
	ErrStorageError    = New(CodeStorageError, "文件存储错误")

	// 具体业务错误
	ErrInvalidParams        = New(CodeBadRequest, "请求参数错误")
	ErrInvalidCredentials   = New(CodeAuthError, "用户名或密码错误")
	ErrLDAPConnectionFailed = New(CodeAuthError, "LDAP连接失败")
	ErrUserNotFound         = New(CodeNotFound, "用户不存在")
	ErrInvalidToken         = New(CodeUnauthorized, "无效的Token")
	ErrTokenExpired         = New(CodeUnauthorized, "Token已过期")
	ErrRecordNotFound       = New(CodeNotFound, "记录不存在")
	ErrProjectNotFound      = New(CodeNotFound, "项目不存在")
)
