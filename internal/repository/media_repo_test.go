package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-cms/internal/dto"
	"site-cms/internal/model"
	"site-cms/internal/pkg/testutil"
	pkgErrors "site-cms/pkg/errors"
)

func TestMediaRepository_InsertAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewMediaRepository(testutil.NewDB(t))

	first := &model.MediaAsset{URL: "/assets/a.png", Alt: "a.png"}
	require.NoError(t, repo.Insert(ctx, first))
	second := &model.MediaAsset{URL: "/assets/b.png", Alt: "b.png"}
	require.NoError(t, repo.Insert(ctx, second))

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.FindByURL(ctx, "/assets/b.png")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	got, err = repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.png", got.Alt)
}

func TestMediaRepository_Absent(t *testing.T) {
	ctx := context.Background()
	repo := NewMediaRepository(testutil.NewDB(t))

	got, err := repo.FindByURL(ctx, "/assets/none.png")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMediaRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMediaRepository(testutil.NewDB(t))

	a := &model.MediaAsset{URL: "/assets/a.png"}
	b := &model.MediaAsset{URL: "/assets/dup.png"}
	c := &model.MediaAsset{URL: "/assets/dup.png"}
	for _, m := range []*model.MediaAsset{a, b, c} {
		require.NoError(t, repo.Insert(ctx, m))
	}

	n, err := repo.Delete(ctx, dto.MediaRef{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, dto.MediaRef{URL: "/assets/dup.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Delete(ctx, dto.MediaRef{})
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeBadRequest))
}
