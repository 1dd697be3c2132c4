// Package testutil 测试用的数据库和存储
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"site-cms/internal/pkg/config"
	"site-cms/internal/pkg/database"
	"site-cms/internal/pkg/storage"
)

// NewDB 在临时目录创建已迁移的 sqlite 数据库
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:      "sqlite",
		Database:    filepath.Join(t.TempDir(), "site.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewBlobStore 内存存储
func NewBlobStore() *storage.FsStore {
	return storage.NewFsStore(afero.NewMemMapFs())
}

// StorageConfig 测试用存储配置
func StorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Driver:         "memory",
		PublicBaseURL:  "/assets",
		MaxUploadBytes: 5 * 1024 * 1024,
		AllowedPrefix:  "image/",
	}
}
