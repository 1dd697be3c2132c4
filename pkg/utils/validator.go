package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator 返回共享的校验器, 字段名取自 json tag
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidateStruct 校验结构体, 失败时返回 字段 -> 信息 映射
func ValidateStruct(s interface{}) map[string]string {
	if err := Validator().Struct(s); err != nil {
		return FieldErrors(err)
	}
	return nil
}

// FieldErrors 将 validator 错误转换为 字段 -> 信息 映射
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			fields[e.Field()] = fieldMessage(e)
		}
		return fields
	}

	if jsonErr, ok := err.(*json.UnmarshalTypeError); ok {
		fields[jsonErr.Field] = fmt.Sprintf("should be %s", jsonErr.Type.String())
		return fields
	}

	fields["_"] = FormatValidationError(err)
	return fields
}

// FormatValidationError 格式化验证错误信息
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	// 处理validator的验证错误
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, formatFieldError(e))
		}
		return strings.Join(messages, "; ")
	}

	// 处理JSON解析错误
	if jsonErr, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("field '%s' should be %s", jsonErr.Field, jsonErr.Type.String())
	}

	// 处理JSON语法错误
	if _, ok := err.(*json.SyntaxError); ok {
		return "invalid JSON format"
	}

	return err.Error()
}

// formatFieldError 格式化单个字段的验证错误
func formatFieldError(e validator.FieldError) string {
	return fmt.Sprintf("field '%s' %s", e.Field(), fieldMessage(e))
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "excludesall":
		return fmt.Sprintf("must not contain any of '%s'", e.Param())
	default:
		return fmt.Sprintf("validation failed on '%s' tag", e.Tag())
	}
}
