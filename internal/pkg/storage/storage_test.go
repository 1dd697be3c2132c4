package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFsStore_PutListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewFsStore(afero.NewMemMapFs())

	n, err := store.Put(ctx, "b.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	_, err = store.Put(ctx, "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "b.png")
	require.NoError(t, err)
	assert.True(t, ok)

	blobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Equal(t, "a.png", blobs[0].Name)
	assert.Equal(t, "b.png", blobs[1].Name)
	assert.Equal(t, int64(9), blobs[1].Size)

	require.NoError(t, store.Delete(ctx, "b.png"))
	ok, err = store.Exists(ctx, "b.png")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Delete(ctx, "b.png"), ErrBlobNotFound)
}

func TestFsStore_RejectsPaths(t *testing.T) {
	ctx := context.Background()
	store := NewFsStore(afero.NewMemMapFs())

	for _, name := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`} {
		_, err := store.Put(ctx, name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName, name)
	}
}

func TestFsStore_FileSystem(t *testing.T) {
	ctx := context.Background()
	store := NewFsStore(afero.NewMemMapFs())
	_, err := store.Put(ctx, "logo.png", strings.NewReader("data"))
	require.NoError(t, err)

	fsys := store.FileSystem()
	f, err := fsys.Open("/logo.png")
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "data", string(body))

	_, err = fsys.Open("/")
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":           "photo.png",
		"my photo (1).jpg":    "my_photo__1_.jpg",
		"../../etc/passwd":    "passwd",
		`C:\Users\me\pic.png`: "pic.png",
		"头像.webp":             "__.webp",
		"":                    "file",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestNewBlobName(t *testing.T) {
	a := NewBlobName("hero image.png")
	b := NewBlobName("hero image.png")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-hero_image.png"))
	assert.NoError(t, ValidateName(a))
	assert.Len(t, strings.SplitN(a, "-", 2)[0], 26)
}

func TestURLRoundTrip(t *testing.T) {
	url := URLFor("/assets/", "01H-x.png")
	assert.Equal(t, "/assets/01H-x.png", url)

	name, ok := NameFromURL("/assets", url)
	assert.True(t, ok)
	assert.Equal(t, "01H-x.png", name)

	_, ok = NameFromURL("/assets", "https://cdn.example.com/x.png")
	assert.False(t, ok)
	_, ok = NameFromURL("/assets", "/assets/sub/x.png")
	assert.False(t, ok)
}
