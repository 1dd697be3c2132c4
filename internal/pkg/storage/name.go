package storage

import (
	"errors"
	"path"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ErrInvalidName 文件名包含路径或为空
var ErrInvalidName = errors.New("invalid blob name")

// SanitizeFilename 只保留字母数字和 . _ -, 其余替换为 _
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return unsafeNameChars.ReplaceAllString(base, "_")
}

// NewBlobName 生成按时间排序且不冲突的文件名: <ULID>-<filename>
func NewBlobName(filename string) string {
	return ulid.Make().String() + "-" + SanitizeFilename(filename)
}

// ValidateName 校验存储文件名, 禁止路径分隔符
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return ErrInvalidName
	}
	return nil
}

// URLFor 拼接文件的公开访问地址
func URLFor(publicBase, name string) string {
	return strings.TrimRight(publicBase, "/") + "/" + name
}

// NameFromURL 从公开地址中取回文件名, 非本存储地址返回 false
func NameFromURL(publicBase, url string) (string, bool) {
	prefix := strings.TrimRight(publicBase, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	if ValidateName(name) != nil {
		return "", false
	}
	return name, true
}
