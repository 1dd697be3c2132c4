package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	pkgErrors "site-cms/pkg/errors"
)

// readUpload 读取 multipart 中的 file 字段, 未上传时返回 nil 由服务层报错
// 最多读取 maxBytes+1 字节, 超出部分由服务层判定
func readUpload(c *gin.Context, maxBytes int64) (*dto.UploadFile, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "读取上传文件失败", err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "读取上传文件失败", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "读取上传文件失败", fmt.Errorf("%s: %w", header.Filename, err))
	}

	return &dto.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}
