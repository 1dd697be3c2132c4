package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-cms/internal/dto"
)

func newSweeper(env *testEnv, now time.Time) *sweepService {
	s := NewSweepService(env.blobs, env.contentRepo, env.mediaRepo, env.projectRepo, "/assets", time.Hour).(*sweepService)
	s.now = func() time.Time { return now }
	return s
}

func TestSweepService_DeletesOnlyOldOrphans(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	uploaded, err := env.uploads.Store(ctx, pngFile(t, "linked.png"), "hero_image", "")
	require.NoError(t, err)
	for _, name := range []string{"orphan.png", "by-content.png", "by-project.png"} {
		_, err := env.blobs.Put(ctx, name, bytes.NewReader([]byte("x")))
		require.NoError(t, err)
	}
	require.NoError(t, env.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate("about_image", "/assets/by-content.png", nil),
	}))
	_, err = env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "P", ImageURL: strPtr("/assets/by-project.png")})
	require.NoError(t, err)

	// 宽限期内不处理
	result, err := newSweeper(env, time.Now()).Sweep(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Scanned)
	assert.Equal(t, 4, result.Young)
	assert.Empty(t, result.Deleted)

	later := time.Now().Add(2 * time.Hour)
	result, err = newSweeper(env, later).Sweep(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan.png"}, result.Deleted)
	assert.Equal(t, 3, result.Kept)
	exists, err := env.blobs.Exists(ctx, "orphan.png")
	require.NoError(t, err)
	assert.True(t, exists, "dry run must not delete")

	result, err = newSweeper(env, later).Sweep(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan.png"}, result.Deleted)

	exists, err = env.blobs.Exists(ctx, "orphan.png")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = env.blobs.Exists(ctx, blobNameOf(uploaded.URL))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSweepService_EmptyStore(t *testing.T) {
	env := newTestEnv(t)
	result, err := newSweeper(env, time.Now()).Sweep(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scanned)
	assert.Empty(t, result.Deleted)
}
