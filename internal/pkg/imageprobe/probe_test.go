package imageprobe

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProbe_PNG(t *testing.T) {
	info, err := Probe(pngBytes(t, 12, 7))
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 7, info.Height)
}

func TestProbe_Unknown(t *testing.T) {
	_, err := Probe([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestIsWEBP(t *testing.T) {
	assert.True(t, isWEBP([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")))
	assert.False(t, isWEBP([]byte("RIFF")))
	assert.False(t, isWEBP(pngBytes(t, 1, 1)))
}
