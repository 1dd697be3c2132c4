package model

import (
	"time"

	"gorm.io/datatypes"
)

const ContentTableName = "content"

// ContentEntry 站点内容键值
// Key 在 MySQL 中为保留字, 列名使用 content_key
type ContentEntry struct {
	Key       string         `gorm:"column:content_key;primaryKey;size:191" json:"key"`
	Value     string         `gorm:"type:text;not null" json:"value"`
	Page      string         `gorm:"size:64;not null;default:global;index:idx_content_page_section" json:"page"`
	Section   string         `gorm:"size:64;not null;default:default;index:idx_content_page_section" json:"section"`
	Type      string         `gorm:"size:64;not null;default:text" json:"type"`
	SortOrder *int           `json:"sort_order"`
	Theme     string         `gorm:"size:8;not null;default:light" json:"theme"`
	MediaID   *int64         `gorm:"index" json:"media_id"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (ContentEntry) TableName() string {
	return ContentTableName
}
