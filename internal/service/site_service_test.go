package service

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-cms/internal/dto"
)

func TestSiteService_Home(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	site := NewSiteService(env.content, env.sections, env.projects)

	require.NoError(t, env.content.UpsertBatch(ctx, []dto.ContentUpdate{
		dto.ValueUpdate("hero_title", "Hello", nil),
		dto.ThemeUpdate("hero_title", "dark"),
		dto.ValueUpdate("about_body", "**Bold** move\n<script>alert(1)</script>", &dto.ContentMeta{Type: strPtr("markdown")}),
		dto.ValueUpdate("home_sections_order", "about,hero", nil),
	}))
	_, err := env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Featured", IsFeatured: lo.ToPtr(true)})
	require.NoError(t, err)
	_, err = env.projects.Create(ctx, &dto.CreateProjectRequest{Title: "Plain"})
	require.NoError(t, err)

	home, err := site.Home(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Hello", home.Content["hero_title"])
	assert.Equal(t, "dark", home.Content["hero_title_theme"])
	assert.Contains(t, home.Rendered["about_body"], "<strong>Bold</strong>")
	assert.NotContains(t, home.Rendered["about_body"], "<script>")
	assert.NotContains(t, home.Rendered, "hero_title")

	require.Len(t, home.Sections, 2)
	assert.Equal(t, "about", home.Sections[0].ID)
	assert.Equal(t, "dark", home.Sections[1].Theme)

	require.Len(t, home.FeaturedProjects, 1)
	assert.Equal(t, "Featured", home.FeaturedProjects[0].Title)
}
