package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, testImage(w, h)))
	return buf.Bytes()
}

func TestThumbnailBoundingBox(t *testing.T) {
	out, contentType, err := Thumbnail(bytes.NewReader(pngBytes(t, 800, 400)), 200)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	// Aspect ratio preserved, neither side above 200
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestThumbnailNoUpscale(t *testing.T) {
	out, _, err := Thumbnail(bytes.NewReader(pngBytes(t, 50, 30)), 200)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestThumbnailDeterministic(t *testing.T) {
	src := pngBytes(t, 800, 400)

	out1, _, err := Thumbnail(bytes.NewReader(src), 200)
	require.NoError(t, err)

	out2, _, err := Thumbnail(bytes.NewReader(src), 200)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
}

func TestThumbnailKeepsSourceFormat(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, jpeg.Encode(buf, testImage(400, 400), nil))

	out, contentType, err := Thumbnail(bytes.NewReader(buf.Bytes()), 200)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestThumbnailDecodeFailure(t *testing.T) {
	_, _, err := Thumbnail(bytes.NewReader([]byte("definitely not an image")), 200)
	assert.Error(t, err)
}
