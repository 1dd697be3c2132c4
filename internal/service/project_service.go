package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"site-cms/internal/dto"
	"site-cms/internal/model"
	"site-cms/internal/pkg/logger"
	"site-cms/internal/repository"
	pkgErrors "site-cms/pkg/errors"
	"site-cms/pkg/utils"
)

type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProjectResponse, error)
	GetPublished(ctx context.Context, idOrSlug string) (*dto.ProjectResponse, error)
	List(ctx context.Context) ([]*dto.ProjectResponse, error)
	ListFeatured(ctx context.Context) ([]*dto.ProjectResponse, error)
	ListPage(ctx context.Context, query *dto.ProjectListQuery, publishedOnly bool) (*dto.PageResponse, error)
	Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SeedIfEmpty(ctx context.Context, projects []SeedProject) (int, error)
}

type projectService struct {
	db   *gorm.DB
	repo repository.ProjectRepository
}

func NewProjectService(db *gorm.DB, repo repository.ProjectRepository) ProjectService {
	return &projectService{
		db:   db,
		repo: repo,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if fields := utils.ValidateStruct(req); fields != nil {
		return nil, pkgErrors.NewValidation(fields)
	}

	project := &model.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Details:     req.Details,
		ImageURL:    emptyToNil(req.ImageURL),
		IsFeatured:  lo.FromPtrOr(req.IsFeatured, false),
		Published:   lo.FromPtrOr(req.Published, true),
		SortOrder:   lo.FromPtrOr(req.SortOrder, 0),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		slug, err := s.uniqueSlug(ctx, repo, lo.FromPtrOr(req.Slug, project.Title), 0)
		if err != nil {
			return err
		}
		project.Slug = slug
		return repo.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("创建项目", zap.Int64("id", project.ID), zap.String("title", project.Title))
	return toProjectResponse(project), nil
}

// GetByID 不存在时返回 ErrProjectNotFound
func (s *projectService) GetByID(ctx context.Context, id int64) (*dto.ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, pkgErrors.ErrProjectNotFound
	}
	return toProjectResponse(project), nil
}

// GetPublished 公开页面按 ID 或 slug 查询, 未发布视为不存在
func (s *projectService) GetPublished(ctx context.Context, idOrSlug string) (*dto.ProjectResponse, error) {
	var (
		project *model.Project
		err     error
	)
	if id, parseErr := strconv.ParseInt(idOrSlug, 10, 64); parseErr == nil {
		project, err = s.repo.FindByID(ctx, id)
	} else {
		project, err = s.repo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if project == nil || !project.Published {
		return nil, pkgErrors.ErrProjectNotFound
	}
	return toProjectResponse(project), nil
}

func (s *projectService) List(ctx context.Context) ([]*dto.ProjectResponse, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, toProjectResponseIndexed), nil
}

func (s *projectService) ListFeatured(ctx context.Context) ([]*dto.ProjectResponse, error) {
	projects, err := s.repo.ListFeatured(ctx, repository.WithPublished())
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, toProjectResponseIndexed), nil
}

func (s *projectService) ListPage(ctx context.Context, query *dto.ProjectListQuery, publishedOnly bool) (*dto.PageResponse, error) {
	var opts []repository.QueryOption
	if publishedOnly {
		opts = append(opts, repository.WithPublished())
	}
	if query.Featured != nil {
		opts = append(opts, repository.WithFeatured(*query.Featured))
	}

	projects, total, err := s.repo.ListPage(ctx, query.GetPageSize(), query.GetOffset(), opts...)
	if err != nil {
		return nil, err
	}
	items := lo.Map(projects, toProjectResponseIndexed)
	return dto.NewPageResponse(items, total, query.GetPage(), query.GetPageSize()), nil
}

// Update 只更新请求中出现的字段, 不存在时返回 ErrProjectNotFound
func (s *projectService) Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if fields := utils.ValidateStruct(req); fields != nil {
		return nil, pkgErrors.NewValidation(fields)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Details != nil {
		updates["details"] = *req.Details
	}
	if req.ImageURL != nil {
		updates["image_url"] = emptyToNil(req.ImageURL)
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	var updated *model.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if req.Slug != nil {
			slug, err := s.uniqueSlug(ctx, repo, *req.Slug, req.ID)
			if err != nil {
				return err
			}
			updates["slug"] = slug
		}

		project, err := repo.Update(ctx, req.ID, updates)
		if err != nil {
			return err
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, pkgErrors.ErrProjectNotFound
	}

	logger.Info("更新项目", zap.Int64("id", updated.ID), zap.Strings("fields", lo.Keys(updates)))
	return toProjectResponse(updated), nil
}

func (s *projectService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info("删除项目", zap.Int64("id", id))
	}
	return removed, nil
}

// SeedIfEmpty 项目表为空时写入示例项目
func (s *projectService) SeedIfEmpty(ctx context.Context, projects []SeedProject) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		_, total, err := repo.ListPage(ctx, 1, 0)
		if err != nil {
			return err
		}
		if total > 0 {
			return nil
		}

		for _, item := range projects {
			slug, err := s.uniqueSlug(ctx, repo, lo.CoalesceOrEmpty(item.Slug, item.Title), 0)
			if err != nil {
				return err
			}
			project := &model.Project{
				Title:       item.Title,
				Slug:        slug,
				Description: emptyToNil(&item.Description),
				Details:     emptyToNil(&item.Details),
				ImageURL:    emptyToNil(&item.ImageURL),
				IsFeatured:  item.IsFeatured,
				Published:   true,
				SortOrder:   item.SortOrder,
			}
			if err := repo.Create(ctx, project); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 转为小写并用 - 连接字母数字
func Slugify(s string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// uniqueSlug 冲突时追加 -2, -3 ..., selfID 为当前项目时不算冲突
func (s *projectService) uniqueSlug(ctx context.Context, repo repository.ProjectRepository, source string, selfID int64) (*string, error) {
	base := Slugify(source)
	if base == "" {
		return nil, nil
	}

	candidate := base
	for i := 2; ; i++ {
		existing, err := repo.FindBySlug(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.ID == selfID {
			return &candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func toProjectResponse(p *model.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Details:     p.Details,
		ImageURL:    p.ImageURL,
		IsFeatured:  p.IsFeatured,
		Published:   p.Published,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt.Format(time.DateTime),
		UpdatedAt:   p.UpdatedAt.Format(time.DateTime),
	}
}

func toProjectResponseIndexed(p *model.Project, _ int) *dto.ProjectResponse {
	return toProjectResponse(p)
}
