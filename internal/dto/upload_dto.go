package dto

import "time"

// UploadFile 上传的文件内容
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// UploadResult 上传结果
type UploadResult struct {
	URL     string `json:"url"`
	Key     string `json:"key"`
	MediaID int64  `json:"media_id"`
}

// ProjectImageResult 项目图片上传结果
type ProjectImageResult struct {
	URL       string `json:"url"`
	ProjectID int64  `json:"project_id"`
	MediaID   int64  `json:"media_id"`
}

// MediaRef 按 ID 或 URL 定位媒体, ID 优先
type MediaRef struct {
	ID  int64
	URL string
}

// SelectImageRequest 选择已上传图片
type SelectImageRequest struct {
	Key string `json:"key" binding:"required"`
	URL string `json:"url" binding:"required"`
}

// SelectImageResult 选择图片结果
type SelectImageResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Key     string `json:"key"`
	MediaID *int64 `json:"media_id"`
}

// DeleteImageResult 删除图片结果
type DeleteImageResult struct {
	Success         bool   `json:"success"`
	Name            string `json:"name"`
	URL             string `json:"url"`
	MediaDeleted    int64  `json:"media_deleted"`
	ContentCleared  int64  `json:"content_cleared"`
	ProjectsCleared int64  `json:"projects_cleared"`
}

// StoredImage 存储中的图片及其媒体记录
type StoredImage struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ModifiedAt  time.Time `json:"modified_at"`
	MediaID     *int64    `json:"media_id"`
	Alt         string    `json:"alt,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
}

// SweepResult 孤儿文件清理结果
type SweepResult struct {
	Scanned int      `json:"scanned"`
	Kept    int      `json:"kept"`
	Young   int      `json:"young"` // 未过宽限期
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed,omitempty"`
	Skipped bool     `json:"skipped,omitempty"` // 已有清理在执行
}
