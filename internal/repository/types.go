package repository

import (
	"errors"

	"gorm.io/gorm"
)

type QueryOption func(*gorm.DB) *gorm.DB

// WithPublished 只查询已发布的项目
func WithPublished() QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("published = ?", true)
	}
}

// WithFeatured 按是否推荐过滤
func WithFeatured(featured bool) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_featured = ?", featured)
	}
}

func applyOptions(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
