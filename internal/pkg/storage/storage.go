package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"
	"time"

	"github.com/spf13/afero"

	"site-cms/internal/pkg/config"
)

// ErrBlobNotFound 文件不存在
var ErrBlobNotFound = fs.ErrNotExist

// BlobInfo 存储中的单个文件
type BlobInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// BlobStore 上传文件的存储
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) (int64, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]BlobInfo, error)
	FileSystem() http.FileSystem
}

// FsStore 基于 afero 的扁平目录存储
type FsStore struct {
	fs afero.Fs
}

func NewFsStore(fsys afero.Fs) *FsStore {
	return &FsStore{fs: fsys}
}

// NewFromConfig 按配置创建存储, local 使用 root 目录, memory 仅用于调试
func NewFromConfig(cfg *config.StorageConfig) (*FsStore, error) {
	switch cfg.Driver {
	case "memory":
		return NewFsStore(afero.NewMemMapFs()), nil
	case "local", "":
		if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
			return nil, fmt.Errorf("创建存储目录失败: %w", err)
		}
		return NewFsStore(afero.NewBasePathFs(afero.NewOsFs(), cfg.Root)), nil
	default:
		return nil, fmt.Errorf("不支持的存储类型: %s", cfg.Driver)
	}
}

func blobPath(name string) string {
	return "/" + name
}

func (s *FsStore) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := ValidateName(name); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := s.fs.Create(blobPath(name))
	if err != nil {
		return 0, fmt.Errorf("创建文件失败: %w", err)
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(blobPath(name))
		return 0, fmt.Errorf("写入文件失败: %w", err)
	}
	return n, nil
}

// Delete 删除文件, 文件不存在时返回 ErrBlobNotFound
func (s *FsStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fs.Remove(blobPath(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

func (s *FsStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	return afero.Exists(s.fs, blobPath(name))
}

// List 按名称排序返回所有文件
func (s *FsStore) List(ctx context.Context) ([]BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(s.fs, "/")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取存储目录失败: %w", err)
	}

	blobs := make([]BlobInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		blobs = append(blobs, BlobInfo{
			Name:    path.Base(entry.Name()),
			Size:    entry.Size(),
			ModTime: entry.ModTime(),
		})
	}
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].Name < blobs[j].Name })
	return blobs, nil
}

// FileSystem 用于 gin StaticFS, 不列目录
func (s *FsStore) FileSystem() http.FileSystem {
	return filesOnly{afero.NewHttpFs(s.fs)}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
