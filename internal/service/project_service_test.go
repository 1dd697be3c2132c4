package service

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-cms/internal/dto"
	pkgErrors "site-cms/pkg/errors"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "modern-kitchen-remodel", Slugify("  Modern Kitchen Remodel! "))
	assert.Equal(t, "a-b", Slugify("a---b"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestProjectService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	project, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: " Backyard Deck "})
	require.NoError(t, err)
	assert.Positive(t, project.ID)
	assert.Equal(t, "Backyard Deck", project.Title)
	assert.False(t, project.IsFeatured)
	assert.True(t, project.Published)
	assert.Equal(t, 0, project.SortOrder)
	require.NotNil(t, project.Slug)
	assert.Equal(t, "backyard-deck", *project.Slug)
	assert.NotEmpty(t, project.CreatedAt)

	second, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Backyard Deck", Published: lo.ToPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "backyard-deck-2", *second.Slug)
	assert.False(t, second.Published)
}

func TestProjectService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projects.Create(context.Background(), &dto.CreateProjectRequest{
		Title:    "   ",
		ImageURL: lo.ToPtr(strings.Repeat("x", 2049)),
	})
	appErr, ok := pkgErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeValidationError, appErr.Code)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "image_url")

	_, err = env.projects.Create(context.Background(), &dto.CreateProjectRequest{Title: strings.Repeat("t", 256)})
	appErr, ok = pkgErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "must be at most 255 characters", appErr.Fields["title"])
}

func TestProjectService_ListOrdering(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, p := range []struct {
		title string
		order int
	}{{"one", 3}, {"two", 1}, {"three", 2}} {
		_, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: p.title, SortOrder: lo.ToPtr(p.order)})
		require.NoError(t, err)
	}

	list, err := env.projects.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three", "one"}, lo.Map(list, func(p *dto.ProjectResponse, _ int) string { return p.Title }))
}

func TestProjectService_ListFeatured(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "plain"})
	require.NoError(t, err)
	_, err = env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "star", IsFeatured: lo.ToPtr(true)})
	require.NoError(t, err)
	_, err = env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "hidden star", IsFeatured: lo.ToPtr(true), Published: lo.ToPtr(false)})
	require.NoError(t, err)

	featured, err := env.projects.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "star", featured[0].Title)
	assert.True(t, featured[0].IsFeatured)
}

func TestProjectService_ListPage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		_, err := env.projects.Create(ctx, &dto.CreateProjectRequest{
			Title:      "p",
			SortOrder:  lo.ToPtr(i),
			IsFeatured: lo.ToPtr(i%2 == 0),
			Published:  lo.ToPtr(i != 4),
		})
		require.NoError(t, err)
	}

	page, err := env.projects.ListPage(ctx, &dto.ProjectListQuery{PageQuery: dto.PageQuery{Page: 2, PageSize: 2}}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	items := page.Items.([]*dto.ProjectResponse)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].SortOrder)

	page, err = env.projects.ListPage(ctx, &dto.ProjectListQuery{PageQuery: dto.PageQuery{Page: 1, PageSize: 10}, Featured: lo.ToPtr(true)}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Old", Description: lo.ToPtr("d")})
	require.NoError(t, err)

	updated, err := env.projects.Update(ctx, &dto.UpdateProjectRequest{
		ID:         created.ID,
		Title:      lo.ToPtr("New"),
		IsFeatured: lo.ToPtr(true),
		Slug:       lo.ToPtr("New Slug"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "new-slug", *updated.Slug)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "d", *updated.Description)

	_, err = env.projects.Update(ctx, &dto.UpdateProjectRequest{ID: 999, Title: lo.ToPtr("x")})
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

	_, err = env.projects.Update(ctx, &dto.UpdateProjectRequest{ID: created.ID, Title: lo.ToPtr(" ")})
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeValidationError))
}

func TestProjectService_GetPublished(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	public, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Public Work"})
	require.NoError(t, err)
	draft, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Draft", Published: lo.ToPtr(false)})
	require.NoError(t, err)

	got, err := env.projects.GetPublished(ctx, "public-work")
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)

	got, err = env.projects.GetPublished(ctx, strconv.FormatInt(public.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, "Public Work", got.Title)

	_, err = env.projects.GetPublished(ctx, strconv.FormatInt(draft.ID, 10))
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
	_, err = env.projects.GetPublished(ctx, "draft")
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

	admin, err := env.projects.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, admin.Published)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Gone"})
	require.NoError(t, err)

	removed, err := env.projects.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.projects.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = env.projects.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)
}

func TestProjectService_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seed := []SeedProject{{Title: "A", IsFeatured: true}, {Title: "B", SortOrder: 1}}
	created, err := env.projects.SeedIfEmpty(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = env.projects.SeedIfEmpty(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
