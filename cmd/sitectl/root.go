package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"site-cms/internal/pkg/config"
	"site-cms/internal/pkg/database"
	"site-cms/internal/pkg/logger"
	"site-cms/internal/pkg/storage"
	"site-cms/internal/repository"
	"site-cms/internal/service"
)

var (
	flagConfig string
	flagJSON   bool
)

var rootCmd = &cobra.Command{
	Use:           "sitectl",
	Short:         "Manage site content, projects and uploaded images",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $CONFIG_FILE or configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output JSON")
}

// app 命令共用的服务
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	blobs    storage.BlobStore
	content  service.ContentService
	projects service.ProjectService
	sweep    service.SweepService
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if env := os.Getenv("CONFIG_FILE"); env != "" {
		return env
	}
	return "configs/config.yaml"
}

func openApp() (*app, func(), error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(&cfg.Log); err != nil {
		return nil, nil, err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = logger.Close()
	}

	blobs, err := storage.NewFromConfig(&cfg.Storage)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	contentRepo := repository.NewContentRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	return &app{
		cfg:      cfg,
		db:       db,
		blobs:    blobs,
		content:  service.NewContentService(db, contentRepo),
		projects: service.NewProjectService(db, projectRepo),
		sweep:    service.NewSweepService(blobs, contentRepo, mediaRepo, projectRepo, cfg.Storage.PublicBaseURL, cfg.Sweep.GraceDuration()),
	}, closeFn, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ptrS(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptrI(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}
