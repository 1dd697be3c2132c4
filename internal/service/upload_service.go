package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"site-cms/internal/dto"
	"site-cms/internal/model"
	"site-cms/internal/pkg/config"
	"site-cms/internal/pkg/imageprobe"
	"site-cms/internal/pkg/logger"
	"site-cms/internal/pkg/storage"
	"site-cms/internal/repository"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

type UploadService interface {
	Store(ctx context.Context, file *dto.UploadFile, key, alt string) (*dto.UploadResult, error)
	StoreProjectImage(ctx context.Context, file *dto.UploadFile, projectID int64) (*dto.ProjectImageResult, error)
	Delete(ctx context.Context, name string) (*dto.DeleteImageResult, error)
	Select(ctx context.Context, key, url string) (*dto.SelectImageResult, error)
	List(ctx context.Context) ([]*dto.StoredImage, error)
}

type uploadService struct {
	db          *gorm.DB
	blobs       storage.BlobStore
	contentRepo repository.ContentRepository
	mediaRepo   repository.MediaRepository
	projectRepo repository.ProjectRepository
	prober      imageprobe.Prober

	publicBase    string
	maxBytes      int64
	allowedPrefix string
}

func NewUploadService(
	db *gorm.DB,
	blobs storage.BlobStore,
	contentRepo repository.ContentRepository,
	mediaRepo repository.MediaRepository,
	projectRepo repository.ProjectRepository,
	cfg *config.StorageConfig,
	prober imageprobe.Prober,
) UploadService {
	s := &uploadService{
		db:            db,
		blobs:         blobs,
		contentRepo:   contentRepo,
		mediaRepo:     mediaRepo,
		projectRepo:   projectRepo,
		prober:        prober,
		publicBase:    lo.CoalesceOrEmpty(cfg.PublicBaseURL, constants.DefaultPublicBaseURL),
		maxBytes:      cfg.MaxUploadBytes,
		allowedPrefix: cfg.AllowedPrefix,
	}
	if s.maxBytes <= 0 {
		s.maxBytes = constants.DefaultMaxUploadBytes
	}
	if s.allowedPrefix == "" {
		s.allowedPrefix = constants.DefaultAllowedPrefix
	}
	return s
}

// Store 上传图片并把内容 key 指向它
// 1. 校验文件和 key, 并在写文件之前校验 (key, url)
// 2. 写入存储
// 3. 事务内写媒体记录并 upsert 内容
// 4. 事务失败时尽力删除已写入的文件, 返回原始错误
func (s *uploadService) Store(ctx context.Context, file *dto.UploadFile, key, alt string) (*dto.UploadResult, error) {
	if err := s.validateFile(file); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgErrors.NewValidation(map[string]string{"key": "missing key"})
	}

	name := storage.NewBlobName(file.Filename)
	url := storage.URLFor(s.publicBase, name)

	link, err := imageLinkWrite(key, url)
	if err != nil {
		return nil, err
	}

	media := s.newMedia(file, name, url, alt)
	if err := s.putBlob(ctx, name, file.Data); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.mediaRepo.WithTx(tx).Insert(ctx, media); err != nil {
			return err
		}
		link.entry.MediaID = &media.ID
		return applyWrites(ctx, s.contentRepo.WithTx(tx), []contentWrite{link})
	})
	if err != nil {
		s.compensate(ctx, name, err)
		return nil, err
	}

	logger.Info("上传图片成功",
		zap.String("key", key),
		zap.String("url", url),
		zap.Int64("media_id", media.ID),
		zap.Int64("size", media.Size))

	return &dto.UploadResult{URL: url, Key: key, MediaID: media.ID}, nil
}

// StoreProjectImage 上传图片并设置为项目图片, 项目不存在时不写文件
func (s *uploadService) StoreProjectImage(ctx context.Context, file *dto.UploadFile, projectID int64) (*dto.ProjectImageResult, error) {
	if err := s.validateFile(file); err != nil {
		return nil, err
	}
	if projectID <= 0 {
		return nil, pkgErrors.NewValidation(map[string]string{"project_id": "missing key"})
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, pkgErrors.ErrProjectNotFound
	}

	name := storage.NewBlobName(file.Filename)
	url := storage.URLFor(s.publicBase, name)
	media := s.newMedia(file, name, url, project.Title)

	if err := s.putBlob(ctx, name, file.Data); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.mediaRepo.WithTx(tx).Insert(ctx, media); err != nil {
			return err
		}
		updated, err := s.projectRepo.WithTx(tx).Update(ctx, projectID, map[string]interface{}{"image_url": url})
		if err != nil {
			return err
		}
		if updated == nil {
			return pkgErrors.ErrProjectNotFound
		}
		return nil
	})
	if err != nil {
		s.compensate(ctx, name, err)
		return nil, err
	}

	logger.Info("上传项目图片成功", zap.Int64("project_id", projectID), zap.String("url", url))
	return &dto.ProjectImageResult{URL: url, ProjectID: projectID, MediaID: media.ID}, nil
}

// Delete 先删文件, 失败则不动数据库; 再在事务内删除媒体记录并清理引用
func (s *uploadService) Delete(ctx context.Context, name string) (*dto.DeleteImageResult, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, pkgErrors.NewValidation(map[string]string{"name": "invalid image name"})
	}
	url := storage.URLFor(s.publicBase, name)

	if err := s.blobs.Delete(ctx, name); err != nil {
		if !errors.Is(err, storage.ErrBlobNotFound) {
			return nil, pkgErrors.Wrap(pkgErrors.CodeStorageError, "删除文件失败", err)
		}
		logger.Warn("文件已不存在, 继续清理数据库", zap.String("name", name))
	}

	result := &dto.DeleteImageResult{Success: true, Name: name, URL: url}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mediaRepo := s.mediaRepo.WithTx(tx)
		assets, err := mediaRepo.FindAllByURL(ctx, url)
		if err != nil {
			return err
		}
		ids := lo.Map(assets, func(m *model.MediaAsset, _ int) int64 { return m.ID })

		if len(ids) > 0 {
			if result.MediaDeleted, err = mediaRepo.Delete(ctx, dto.MediaRef{URL: url}); err != nil {
				return err
			}
		}
		if result.ContentCleared, err = s.contentRepo.WithTx(tx).ClearReferences(ctx, ids, url); err != nil {
			return err
		}
		if result.ProjectsCleared, err = s.projectRepo.WithTx(tx).ClearImageURL(ctx, url); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("文件已删除但清理数据库失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	logger.Info("删除图片",
		zap.String("name", name),
		zap.Int64("media_deleted", result.MediaDeleted),
		zap.Int64("content_cleared", result.ContentCleared),
		zap.Int64("projects_cleared", result.ProjectsCleared))
	return result, nil
}

// Select 复用已上传的图片, 找不到媒体记录时 media_id 置空
func (s *uploadService) Select(ctx context.Context, key, url string) (*dto.SelectImageResult, error) {
	key = strings.TrimSpace(key)
	url = strings.TrimSpace(url)
	fields := make(map[string]string)
	if key == "" {
		fields["key"] = "missing key"
	}
	if url == "" {
		fields["url"] = "missing url"
	}
	if len(fields) > 0 {
		return nil, pkgErrors.NewValidation(fields)
	}

	link, err := imageLinkWrite(key, url)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		media, err := s.mediaRepo.WithTx(tx).FindByURL(ctx, url)
		if err != nil {
			return err
		}
		if media != nil {
			link.entry.MediaID = &media.ID
		}
		return applyWrites(ctx, s.contentRepo.WithTx(tx), []contentWrite{link})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("选择图片", zap.String("key", key), zap.String("url", url))
	return &dto.SelectImageResult{Success: true, URL: url, Key: key, MediaID: link.entry.MediaID}, nil
}

// List 存储中的文件, 附带对应的媒体记录
func (s *uploadService) List(ctx context.Context) ([]*dto.StoredImage, error) {
	blobs, err := s.blobs.List(ctx)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeStorageError, "读取文件列表失败", err)
	}
	assets, err := s.mediaRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// List 按 id 倒序, 同一 url 保留最新的记录
	byURL := make(map[string]*model.MediaAsset, len(assets))
	for _, m := range assets {
		if _, ok := byURL[m.URL]; !ok {
			byURL[m.URL] = m
		}
	}

	images := make([]*dto.StoredImage, 0, len(blobs))
	for _, blob := range blobs {
		url := storage.URLFor(s.publicBase, blob.Name)
		image := &dto.StoredImage{
			Name:       blob.Name,
			URL:        url,
			Size:       blob.Size,
			ModifiedAt: blob.ModTime,
		}
		if m, ok := byURL[url]; ok {
			image.MediaID = lo.ToPtr(m.ID)
			image.Alt = m.Alt
			image.ContentType = m.ContentType
			image.Width = m.Width
			image.Height = m.Height
		}
		images = append(images, image)
	}
	return images, nil
}

func (s *uploadService) validateFile(file *dto.UploadFile) error {
	if file == nil || len(file.Data) == 0 {
		return pkgErrors.NewValidation(map[string]string{"file": "missing file"})
	}

	contentType := file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(file.Data)
		file.ContentType = contentType
	}
	if !strings.HasPrefix(contentType, s.allowedPrefix) {
		return pkgErrors.NewValidation(map[string]string{
			"file": fmt.Sprintf("unsupported content type '%s'", contentType),
		})
	}

	size := int64(len(file.Data))
	if size > s.maxBytes {
		return pkgErrors.NewValidation(map[string]string{
			"file": fmt.Sprintf("must be at most %d bytes", s.maxBytes),
		})
	}
	file.Size = size
	return nil
}

func (s *uploadService) newMedia(file *dto.UploadFile, name, url, alt string) *model.MediaAsset {
	media := &model.MediaAsset{
		URL:         url,
		Alt:         lo.CoalesceOrEmpty(strings.TrimSpace(alt), file.Filename),
		BlobName:    name,
		ContentType: file.ContentType,
		Size:        file.Size,
	}
	if s.prober == nil {
		return media
	}

	info, err := s.prober.Probe(file.Data)
	if err != nil {
		logger.Debug("读取图片尺寸失败", zap.String("name", name), zap.Error(err))
		return media
	}
	media.Width = lo.ToPtr(info.Width)
	media.Height = lo.ToPtr(info.Height)
	return media
}

func (s *uploadService) putBlob(ctx context.Context, name string, data []byte) error {
	if _, err := s.blobs.Put(ctx, name, bytes.NewReader(data)); err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeStorageError, "保存文件失败", err)
	}
	return nil
}

// compensate 尽力删除已写入的文件, 失败只记录日志
func (s *uploadService) compensate(ctx context.Context, name string, cause error) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), name); err != nil && !errors.Is(err, storage.ErrBlobNotFound) {
		logger.Error("回滚上传文件失败",
			zap.String("name", name),
			zap.Error(err),
			zap.NamedError("cause", cause))
		return
	}
	logger.Warn("数据库写入失败, 已删除上传文件", zap.String("name", name), zap.Error(cause))
}

// imageLinkWrite 内容指向图片, 总是写 media_id 列
func imageLinkWrite(key, url string) (contentWrite, error) {
	imageType := constants.ContentTypeImage
	write, errs := prepareValueWrite(key, &url, &dto.ContentMeta{Type: &imageType})
	if len(errs) > 0 {
		return contentWrite{}, pkgErrors.NewValidation(errs)
	}
	write.columns = append(write.columns, "media_id")
	return write, nil
}
