package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
content:
  - key: hero_title
    value: Hello
    page: home
    section: hero
  - key: services_intro_title
    value: Services
    sort_order: 2
projects:
  - title: Deck
    is_featured: true
`), 0o644))

	data, err := LoadSeedData(path)
	require.NoError(t, err)
	require.Len(t, data.Content, 2)
	assert.Equal(t, "hero", data.Content[0].Section)
	require.NotNil(t, data.Content[1].SortOrder)
	assert.Equal(t, 2, *data.Content[1].SortOrder)
	require.Len(t, data.Projects, 1)
	assert.True(t, data.Projects[0].IsFeatured)

	update := data.Content[1].toUpdate()
	assert.Nil(t, update.Metadata.Page)
	assert.Equal(t, "Services", *update.Value)
}

func TestLoadSeedData_Builtin(t *testing.T) {
	data, err := LoadSeedData("")
	require.NoError(t, err)
	assert.NotEmpty(t, data.Content)
}

func TestLoadSeedData_MissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content:\n  - value: orphan\n"), 0o644))

	_, err := LoadSeedData(path)
	assert.Error(t, err)
}
