package repository

import (
	"context"

	"gorm.io/gorm"

	"site-cms/internal/model"
	pkgErrors "site-cms/pkg/errors"
)

type ProjectRepository interface {
	WithTx(tx *gorm.DB) ProjectRepository
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id int64) (*model.Project, error)
	FindBySlug(ctx context.Context, slug string) (*model.Project, error)
	List(ctx context.Context, opts ...QueryOption) ([]*model.Project, error)
	ListFeatured(ctx context.Context, opts ...QueryOption) ([]*model.Project, error)
	ListPage(ctx context.Context, limit, offset int, opts ...QueryOption) ([]*model.Project, int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Project, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ClearImageURL(ctx context.Context, url string) (int64, error)
	ReferencedImageURLs(ctx context.Context, urls []string) ([]string, error)
}

type projectRepository struct {
	db *gorm.DB
	// stmtDB 与 db 共享连接池, 缓存本实例的预编译语句
	stmtDB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{
		db:     db,
		stmtDB: db.Session(&gorm.Session{PrepareStmt: true}),
	}
}

// WithTx 事务内不使用预编译缓存
func (r *projectRepository) WithTx(tx *gorm.DB) ProjectRepository {
	return &projectRepository{db: tx, stmtDB: tx}
}

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("created_at DESC").Order("id DESC")
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}
	return nil
}

// FindByID 不存在时返回 nil, nil
func (r *projectRepository) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	err := r.stmtDB.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

// List 按 sort_order 升序, created_at 降序
func (r *projectRepository) List(ctx context.Context, opts ...QueryOption) ([]*model.Project, error) {
	var projects []*model.Project
	query := applyOptions(r.db.WithContext(ctx).Model(&model.Project{}), opts)
	if err := ordered(query).Find(&projects).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) ListFeatured(ctx context.Context, opts ...QueryOption) ([]*model.Project, error) {
	return r.List(ctx, append([]QueryOption{WithFeatured(true)}, opts...)...)
}

func (r *projectRepository) ListPage(ctx context.Context, limit, offset int, opts ...QueryOption) ([]*model.Project, int64, error) {
	var projects []*model.Project
	var total int64

	query := applyOptions(r.db.WithContext(ctx).Model(&model.Project{}), opts).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目数量失败", err)
	}

	if err := ordered(query).Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目列表失败", err)
	}

	return projects, total, nil
}

// Update 部分更新并刷新 updated_at, 不存在时返回 nil, nil
func (r *projectRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Project, error) {
	var updated *model.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}

		values := make(map[string]interface{}, len(updates)+1)
		for k, v := range updates {
			values[k] = v
		}
		values["updated_at"] = tx.NowFunc()

		if err := tx.Model(&model.Project{}).Where("id = ?", id).UpdateColumns(values).Error; err != nil {
			return err
		}

		var fresh model.Project
		if err := tx.Where("id = ?", id).First(&fresh).Error; err != nil {
			return err
		}
		updated = &fresh
		return nil
	})
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return updated, nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if result.Error != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除项目失败", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ClearImageURL 将引用了 url 的项目图片置空
func (r *projectRepository) ClearImageURL(ctx context.Context, url string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Project{}).Where("image_url = ?", url).
		UpdateColumns(map[string]interface{}{
			"image_url":  nil,
			"updated_at": r.db.NowFunc(),
		})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "清理项目图片失败", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *projectRepository) ReferencedImageURLs(ctx context.Context, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	var found []string
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("image_url IN ?", urls).Distinct().Pluck("image_url", &found).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目图片引用失败", err)
	}
	return found, nil
}
