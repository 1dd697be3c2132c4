package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/logger"
	"site-cms/internal/pkg/storage"
	"site-cms/internal/pkg/testutil"
	pkgErrors "site-cms/pkg/errors"
)

// flakyStore 可按需让 Put 或 Delete 失败
type flakyStore struct {
	storage.BlobStore
	putErr    error
	deleteErr error
}

func (s *flakyStore) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	if s.putErr != nil {
		return 0, s.putErr
	}
	return s.BlobStore.Put(ctx, name, r)
}

func (s *flakyStore) Delete(ctx context.Context, name string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.BlobStore.Delete(ctx, name)
}

func pngFile(t *testing.T, name string) *dto.UploadFile {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &dto.UploadFile{Filename: name, ContentType: "image/png", Data: buf.Bytes()}
}

func blobNameOf(url string) string {
	return strings.TrimPrefix(url, "/assets/")
}

// failMediaInsert 让 media 表的插入失败
func failMediaInsert(t *testing.T, db *gorm.DB, injected error) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_media", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "media" {
			_ = tx.AddError(injected)
		}
	})
	require.NoError(t, err)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(zap.NewNop()) })
	return logs
}

func TestUploadService_StoreLinksContent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	result, err := env.uploads.Store(ctx, pngFile(t, "My Photo (1).png"), "hero_image", "")
	require.NoError(t, err)
	assert.Equal(t, "hero_image", result.Key)
	assert.True(t, strings.HasPrefix(result.URL, "/assets/"))
	assert.True(t, strings.HasSuffix(result.URL, "-My_Photo__1_.png"))
	assert.Positive(t, result.MediaID)

	exists, err := env.blobs.Exists(ctx, blobNameOf(result.URL))
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := env.content.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.URL, all["hero_image"])

	entry, err := env.content.GetOne(ctx, "hero_image")
	require.NoError(t, err)
	require.NotNil(t, entry.MediaID)
	assert.Equal(t, result.MediaID, *entry.MediaID)
	assert.Equal(t, "image", entry.Type)

	media, err := env.mediaRepo.FindByID(ctx, result.MediaID)
	require.NoError(t, err)
	require.NotNil(t, media)
	assert.Equal(t, result.URL, media.URL)
	assert.Equal(t, "My Photo (1).png", media.Alt)
	assert.Equal(t, "image/png", media.ContentType)
}

func TestUploadService_StoreKeepsThemeOfExistingKey(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate("about_image", "", nil),
		dto.ThemeUpdate("about_image", "dark"),
	}))

	result, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "about_image", "About")
	require.NoError(t, err)

	all, err := env.content.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.URL, all["about_image"])
	assert.Equal(t, "dark", all["about_image_theme"])
}

func TestUploadService_StoreValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name  string
		file  *dto.UploadFile
		key   string
		field string
	}{
		{name: "missing file", file: nil, key: "k", field: "file"},
		{name: "empty file", file: &dto.UploadFile{Filename: "a.png"}, key: "k", field: "file"},
		{name: "not an image", file: &dto.UploadFile{Filename: "a.txt", ContentType: "text/plain", Data: []byte("hello")}, key: "k", field: "file"},
		{name: "too large", file: &dto.UploadFile{Filename: "a.png", ContentType: "image/png", Data: make([]byte, 5*1024*1024+1)}, key: "k", field: "file"},
		{name: "missing key", file: pngFile(t, "a.png"), key: "  ", field: "key"},
		{name: "theme suffix key", file: pngFile(t, "a.png"), key: "hero_theme", field: "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uploads.Store(ctx, tt.file, tt.key, "")
			appErr, ok := pkgErrors.As(err)
			require.True(t, ok)
			assert.Equal(t, pkgErrors.CodeValidationError, appErr.Code)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}

	blobs, err := env.blobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blobs)
}

func TestUploadService_StoreSniffsContentType(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	file := pngFile(t, "a.png")
	file.ContentType = ""
	_, err := env.uploads.Store(ctx, file, "k", "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", file.ContentType)
}

func TestUploadService_StorePutFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnvWithBlobs(t, &flakyStore{BlobStore: testutil.NewBlobStore(), putErr: errors.New("disk full")})

	_, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "k", "")
	require.Error(t, err)
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeStorageError))

	entry, err := env.content.GetOne(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestUploadService_StoreCompensatesOnDatabaseFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	logs := observeLogs(t)

	injected := errors.New("injected insert failure")
	failMediaInsert(t, env.db, injected)

	_, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "hero_image", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	blobs, err := env.blobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blobs)

	entry, err := env.content.GetOne(ctx, "hero_image")
	require.NoError(t, err)
	assert.Nil(t, entry)

	assert.Equal(t, 1, logs.FilterMessage("数据库写入失败, 已删除上传文件").Len())
}

func TestUploadService_CompensationFailureKeepsOriginalError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnvWithBlobs(t, &flakyStore{BlobStore: testutil.NewBlobStore(), deleteErr: errors.New("permission denied")})
	logs := observeLogs(t)

	injected := errors.New("injected insert failure")
	failMediaInsert(t, env.db, injected)

	_, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "hero_image", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)
	assert.NotContains(t, err.Error(), "permission denied")

	entries := logs.FilterMessage("回滚上传文件失败").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestUploadService_StoreProjectImage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.uploads.StoreProjectImage(ctx, pngFile(t, "p.png"), 404)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
	blobs, err := env.blobs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blobs)

	project, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Kitchen"})
	require.NoError(t, err)

	result, err := env.uploads.StoreProjectImage(ctx, pngFile(t, "p.png"), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, result.ProjectID)

	got, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, result.URL, *got.ImageURL)

	media, err := env.mediaRepo.FindByURL(ctx, result.URL)
	require.NoError(t, err)
	require.NotNil(t, media)
	assert.Equal(t, "Kitchen", media.Alt)
}

func TestUploadService_DeleteCleansReferences(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	uploaded, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "hero_image", "")
	require.NoError(t, err)
	require.NoError(t, env.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate("about_image", uploaded.URL, nil),
		dto.ValueUpdate("unrelated", "keep me", nil),
	}))
	project, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Deck", ImageURL: &uploaded.URL})
	require.NoError(t, err)

	result, err := env.uploads.Delete(ctx, blobNameOf(uploaded.URL))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(1), result.MediaDeleted)
	assert.Equal(t, int64(2), result.ContentCleared)
	assert.Equal(t, int64(1), result.ProjectsCleared)

	exists, err := env.blobs.Exists(ctx, blobNameOf(uploaded.URL))
	require.NoError(t, err)
	assert.False(t, exists)

	entry, err := env.content.GetOne(ctx, "hero_image")
	require.NoError(t, err)
	assert.Equal(t, "", entry.Value)
	assert.Nil(t, entry.MediaID)

	all, err := env.content.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", all["about_image"])
	assert.Equal(t, "keep me", all["unrelated"])

	got, err := env.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ImageURL)

	media, err := env.mediaRepo.FindByURL(ctx, uploaded.URL)
	require.NoError(t, err)
	assert.Nil(t, media)
}

func TestUploadService_DeleteMissingBlobStillCleans(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate("hero_image", "/assets/gone.png", nil),
	}))

	result, err := env.uploads.Delete(ctx, "gone.png")
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.MediaDeleted)
	assert.Equal(t, int64(1), result.ContentCleared)
}

func TestUploadService_DeleteRejectsPaths(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`} {
		_, err := env.uploads.Delete(context.Background(), name)
		assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeValidationError), name)
	}
}

func TestUploadService_DeleteBlobFailureAbortsBeforeDatabase(t *testing.T) {
	ctx := context.Background()
	env := newTestEnvWithBlobs(t, &flakyStore{BlobStore: testutil.NewBlobStore(), deleteErr: errors.New("io error")})

	require.NoError(t, env.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate("hero_image", "/assets/a.png", nil),
	}))

	_, err := env.uploads.Delete(ctx, "a.png")
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeStorageError))

	all, err := env.content.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/assets/a.png", all["hero_image"])
}

func TestUploadService_Select(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	uploaded, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "hero_image", "")
	require.NoError(t, err)

	selected, err := env.uploads.Select(ctx, "about_image", uploaded.URL)
	require.NoError(t, err)
	require.NotNil(t, selected.MediaID)
	assert.Equal(t, uploaded.MediaID, *selected.MediaID)

	external, err := env.uploads.Select(ctx, "contact_image", "https://cdn.example.com/x.png")
	require.NoError(t, err)
	assert.Nil(t, external.MediaID)

	entry, err := env.content.GetOne(ctx, "contact_image")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.png", entry.Value)
	assert.Nil(t, entry.MediaID)

	_, err = env.uploads.Select(ctx, "", "")
	appErr, ok := pkgErrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "key")
	assert.Contains(t, appErr.Fields, "url")
}

func TestUploadService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	uploaded, err := env.uploads.Store(ctx, pngFile(t, "a.png"), "hero_image", "Hero")
	require.NoError(t, err)
	_, err = env.blobs.Put(ctx, "stray.png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	images, err := env.uploads.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 2)

	byName := make(map[string]*dto.StoredImage)
	for _, img := range images {
		byName[img.Name] = img
	}
	linked := byName[blobNameOf(uploaded.URL)]
	require.NotNil(t, linked)
	require.NotNil(t, linked.MediaID)
	assert.Equal(t, uploaded.MediaID, *linked.MediaID)
	assert.Equal(t, "Hero", linked.Alt)

	stray := byName["stray.png"]
	require.NotNil(t, stray)
	assert.Nil(t, stray.MediaID)
	assert.Equal(t, "/assets/stray.png", stray.URL)
}
