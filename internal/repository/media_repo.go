package repository

import (
	"context"

	"gorm.io/gorm"

	"site-cms/internal/dto"
	"site-cms/internal/model"
	pkgErrors "site-cms/pkg/errors"
)

type MediaRepository interface {
	WithTx(tx *gorm.DB) MediaRepository
	Insert(ctx context.Context, media *model.MediaAsset) error
	FindByID(ctx context.Context, id int64) (*model.MediaAsset, error)
	FindByURL(ctx context.Context, url string) (*model.MediaAsset, error)
	FindAllByURL(ctx context.Context, url string) ([]*model.MediaAsset, error)
	List(ctx context.Context) ([]*model.MediaAsset, error)
	Delete(ctx context.Context, ref dto.MediaRef) (int64, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) WithTx(tx *gorm.DB) MediaRepository {
	return &mediaRepository{db: tx}
}

// Insert 写入媒体记录并回填 ID
// 支持 RETURNING 的方言由 gorm 直接回填, 否则使用 LastInsertId, 两者都拿不到时按 url 回读
func (r *mediaRepository) Insert(ctx context.Context, media *model.MediaAsset) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(media).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "保存媒体记录失败", err)
	}
	if media.ID != 0 {
		return nil
	}

	var stored model.MediaAsset
	if err := db.Where("url = ?", media.URL).Order("id DESC").First(&stored).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "回读媒体记录失败", err)
	}
	media.ID = stored.ID
	return nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id int64) (*model.MediaAsset, error) {
	var media model.MediaAsset
	err := r.db.WithContext(ctx).First(&media, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询媒体记录失败", err)
	}
	return &media, nil
}

// FindByURL url 不唯一, 返回最新的一条
func (r *mediaRepository) FindByURL(ctx context.Context, url string) (*model.MediaAsset, error) {
	var media model.MediaAsset
	err := r.db.WithContext(ctx).Where("url = ?", url).Order("id DESC").First(&media).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询媒体记录失败", err)
	}
	return &media, nil
}

func (r *mediaRepository) FindAllByURL(ctx context.Context, url string) ([]*model.MediaAsset, error) {
	var list []*model.MediaAsset
	if err := r.db.WithContext(ctx).Where("url = ?", url).Order("id ASC").Find(&list).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询媒体记录失败", err)
	}
	return list, nil
}

func (r *mediaRepository) List(ctx context.Context) ([]*model.MediaAsset, error) {
	var list []*model.MediaAsset
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&list).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询媒体列表失败", err)
	}
	return list, nil
}

// Delete 按 ID 或 URL 删除, 返回删除行数; 内容引用由调用方清理
func (r *mediaRepository) Delete(ctx context.Context, ref dto.MediaRef) (int64, error) {
	query := r.db.WithContext(ctx)
	switch {
	case ref.ID > 0:
		query = query.Where("id = ?", ref.ID)
	case ref.URL != "":
		query = query.Where("url = ?", ref.URL)
	default:
		return 0, pkgErrors.New(pkgErrors.CodeBadRequest, "缺少媒体ID或URL")
	}

	result := query.Delete(&model.MediaAsset{})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除媒体记录失败", result.Error)
	}
	return result.RowsAffected, nil
}
