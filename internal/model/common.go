package model

import (
	"time"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// AllModels 参与自动迁移的模型
func AllModels() []interface{} {
	return []interface{}{
		&ContentEntry{},
		&MediaAsset{},
		&Project{},
	}
}
