package model

import "time"

const MediaTableName = "media"

// MediaAsset 上传的媒体文件, 只增不改
type MediaAsset struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	URL         string    `gorm:"column:url;size:512;not null;index" json:"url"`
	Alt         string    `gorm:"size:255;not null" json:"alt"`
	BlobName    string    `gorm:"size:255" json:"blob_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	Size        int64     `json:"size"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (MediaAsset) TableName() string {
	return MediaTableName
}
