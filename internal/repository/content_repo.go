package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"site-cms/internal/model"
	pkgErrors "site-cms/pkg/errors"
)

type ContentRepository interface {
	WithTx(tx *gorm.DB) ContentRepository
	FindAll(ctx context.Context) ([]*model.ContentEntry, error)
	FindByKey(ctx context.Context, key string) (*model.ContentEntry, error)
	List(ctx context.Context, page, section string) ([]*model.ContentEntry, error)
	Upsert(ctx context.Context, entry *model.ContentEntry, updateColumns []string) error
	UpdateTheme(ctx context.Context, key, theme string) (bool, error)
	DeleteByKey(ctx context.Context, key string) (bool, error)
	ClearReferences(ctx context.Context, mediaIDs []int64, url string) (int64, error)
	ReferencedValues(ctx context.Context, values []string) ([]string, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) WithTx(tx *gorm.DB) ContentRepository {
	return &contentRepository{db: tx}
}

func (r *contentRepository) FindAll(ctx context.Context) ([]*model.ContentEntry, error) {
	var entries []*model.ContentEntry
	if err := r.db.WithContext(ctx).Order("content_key ASC").Find(&entries).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询内容失败", err)
	}
	return entries, nil
}

// FindByKey 不存在时返回 nil, nil
func (r *contentRepository) FindByKey(ctx context.Context, key string) (*model.ContentEntry, error) {
	var entry model.ContentEntry
	err := r.db.WithContext(ctx).Where("content_key = ?", key).First(&entry).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询内容失败", err)
	}
	return &entry, nil
}

func (r *contentRepository) List(ctx context.Context, page, section string) ([]*model.ContentEntry, error) {
	query := r.db.WithContext(ctx).Model(&model.ContentEntry{})
	if page != "" {
		query = query.Where("page = ?", page)
	}
	if section != "" {
		query = query.Where("section = ?", section)
	}

	var entries []*model.ContentEntry
	err := query.Order("page ASC").Order("section ASC").Order("sort_order ASC").Order("content_key ASC").
		Find(&entries).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询内容列表失败", err)
	}
	return entries, nil
}

// Upsert 按 key 插入或更新, 冲突时只更新 updateColumns
func (r *contentRepository) Upsert(ctx context.Context, entry *model.ContentEntry, updateColumns []string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_key"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(entry).Error
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "保存内容失败", err)
	}
	return nil
}

// UpdateTheme 只更新 theme 列, 行不存在时返回 false 且不创建
func (r *contentRepository) UpdateTheme(ctx context.Context, key, theme string) (bool, error) {
	db := r.db.WithContext(ctx)

	// MySQL 的 RowsAffected 只统计实际变化的行, 这里先确认行存在
	var count int64
	if err := db.Model(&model.ContentEntry{}).Where("content_key = ?", key).Count(&count).Error; err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询内容失败", err)
	}
	if count == 0 {
		return false, nil
	}

	err := db.Model(&model.ContentEntry{}).Where("content_key = ?", key).
		UpdateColumns(map[string]interface{}{
			"theme":      theme,
			"updated_at": db.NowFunc(),
		}).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新主题失败", err)
	}
	return true, nil
}

func (r *contentRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	result := r.db.WithContext(ctx).Where("content_key = ?", key).Delete(&model.ContentEntry{})
	if result.Error != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除内容失败", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ClearReferences 清空引用了指定媒体或 value 等于 url 的内容
func (r *contentRepository) ClearReferences(ctx context.Context, mediaIDs []int64, url string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ContentEntry{}).Where("value = ?", url)
	if len(mediaIDs) > 0 {
		query = query.Or("media_id IN ?", mediaIDs)
	}

	result := query.UpdateColumns(map[string]interface{}{
		"value":      "",
		"media_id":   nil,
		"updated_at": r.db.NowFunc(),
	})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理内容引用失败", result.Error)
	}
	return result.RowsAffected, nil
}

// ReferencedValues 返回 values 中被某条内容直接引用的值
func (r *contentRepository) ReferencedValues(ctx context.Context, values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var found []string
	err := r.db.WithContext(ctx).Model(&model.ContentEntry{}).
		Where("value IN ?", values).Distinct().Pluck("value", &found).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询内容引用失败", err)
	}
	return found, nil
}
