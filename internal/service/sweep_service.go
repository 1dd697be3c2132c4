package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/logger"
	"site-cms/internal/pkg/storage"
	"site-cms/internal/repository"
	pkgErrors "site-cms/pkg/errors"
)

const sweepChunkSize = 200

// SweepService 清理没有任何引用的上传文件
// 上传在写文件和提交事务之间崩溃会留下孤儿文件, 宽限期内的文件不处理
type SweepService interface {
	Sweep(ctx context.Context, dryRun bool) (*dto.SweepResult, error)
}

type sweepService struct {
	blobs       storage.BlobStore
	contentRepo repository.ContentRepository
	mediaRepo   repository.MediaRepository
	projectRepo repository.ProjectRepository
	publicBase  string
	grace       time.Duration
	now         func() time.Time
}

func NewSweepService(
	blobs storage.BlobStore,
	contentRepo repository.ContentRepository,
	mediaRepo repository.MediaRepository,
	projectRepo repository.ProjectRepository,
	publicBase string,
	grace time.Duration,
) SweepService {
	return &sweepService{
		blobs:       blobs,
		contentRepo: contentRepo,
		mediaRepo:   mediaRepo,
		projectRepo: projectRepo,
		publicBase:  publicBase,
		grace:       grace,
		now:         time.Now,
	}
}

func (s *sweepService) Sweep(ctx context.Context, dryRun bool) (*dto.SweepResult, error) {
	blobs, err := s.blobs.List(ctx)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorageError, "读取文件列表失败", err)
	}

	result := &dto.SweepResult{Scanned: len(blobs), Deleted: []string{}}
	cutoff := s.now().Add(-s.grace)

	candidates := lo.Filter(blobs, func(b storage.BlobInfo, _ int) bool {
		return b.ModTime.Before(cutoff)
	})
	result.Young = len(blobs) - len(candidates)
	if len(candidates) == 0 {
		return result, nil
	}

	referenced, err := s.referencedURLs(ctx, lo.Map(candidates, func(b storage.BlobInfo, _ int) string {
		return storage.URLFor(s.publicBase, b.Name)
	}))
	if err != nil {
		return nil, err
	}

	for _, blob := range candidates {
		if referenced[storage.URLFor(s.publicBase, blob.Name)] {
			result.Kept++
			continue
		}
		if dryRun {
			result.Deleted = append(result.Deleted, blob.Name)
			continue
		}
		if err := s.blobs.Delete(ctx, blob.Name); err != nil {
			logger.Warn("删除孤儿文件失败", zap.String("name", blob.Name), zap.Error(err))
			result.Failed = append(result.Failed, blob.Name)
			continue
		}
		result.Deleted = append(result.Deleted, blob.Name)
	}

	logger.Info("孤儿文件清理完成",
		zap.Bool("dry_run", dryRun),
		zap.Int("scanned", result.Scanned),
		zap.Int("kept", result.Kept),
		zap.Int("young", result.Young),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}

// referencedURLs 被媒体记录, 内容或项目引用的 url
func (s *sweepService) referencedURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	referenced := make(map[string]bool)

	assets, err := s.mediaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range assets {
		referenced[m.URL] = true
	}

	for _, chunk := range lo.Chunk(urls, sweepChunkSize) {
		values, err := s.contentRepo.ReferencedValues(ctx, chunk)
		if err != nil {
			return nil, err
		}
		images, err := s.projectRepo.ReferencedImageURLs(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, url := range append(values, images...) {
			referenced[url] = true
		}
	}
	return referenced, nil
}
