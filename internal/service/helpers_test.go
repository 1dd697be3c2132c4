package service

import (
	"testing"

	"gorm.io/gorm"

	"site-cms/internal/pkg/storage"
	"site-cms/internal/pkg/testutil"
	"site-cms/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	blobs    storage.BlobStore
	content  ContentService
	sections SectionService
	projects ProjectService
	uploads  UploadService

	contentRepo repository.ContentRepository
	mediaRepo   repository.MediaRepository
	projectRepo repository.ProjectRepository
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithBlobs(t, testutil.NewBlobStore())
}

func newTestEnvWithBlobs(t *testing.T, blobs storage.BlobStore) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	env := &testEnv{
		db:          db,
		blobs:       blobs,
		contentRepo: repository.NewContentRepository(db),
		mediaRepo:   repository.NewMediaRepository(db),
		projectRepo: repository.NewProjectRepository(db),
	}
	env.content = NewContentService(db, env.contentRepo)
	env.sections = NewSectionService(env.content)
	env.projects = NewProjectService(db, env.projectRepo)
	env.uploads = NewUploadService(db, blobs, env.contentRepo, env.mediaRepo, env.projectRepo, testutil.StorageConfig(), nil)
	return env
}

func strPtr(s string) *string { return &s }
