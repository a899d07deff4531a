package svgico

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_RasterFormat(t *testing.T) {
	for in, want := range map[string]RasterFormat{"png": FormatPNG, ".PNG": FormatPNG, "bmp": FormatBMP} {
		f, err := ParseRasterFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}
	_, err := ParseRasterFormat("jpg")
	assert.Error(t, err)

	assert.Equal(t, ".png", RasterFormat("").Ext())
	assert.Equal(t, ".bmp", FormatBMP.Ext())
}

func TestImage_EncodeDecodePNG(t *testing.T) {
	canvas := image.NewNRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	canvas.SetNRGBA(10, 20, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	canvas.SetNRGBA(255, 255, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	require.NoError(t, encodeImg(&buf, canvas, FormatPNG))
	path := filepath.Join(t.TempDir(), "canvas.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := decodeImg(path)
	require.NoError(t, err)
	assert.Equal(t, canvas.Pix, got.Pix)
}

func TestImage_EncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, encodeImg(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1)), RasterFormat("gif")))
}

func TestImage_DecodeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := decodeImg(filepath.Join(dir, "missing.png"))
	assert.True(t, IsKind(err, IOError), "%v", err)

	text := filepath.Join(dir, "text.png")
	require.NoError(t, os.WriteFile(text, []byte("hello"), 0644))
	_, err = decodeImg(text)
	assert.True(t, IsKind(err, PixelConversionError), "%v", err)

	var buf bytes.Buffer
	require.NoError(t, encodeImg(&buf, image.NewNRGBA(image.Rect(0, 0, 16, 16)), FormatPNG))
	small := filepath.Join(dir, "small.png")
	require.NoError(t, os.WriteFile(small, buf.Bytes(), 0644))
	_, err = decodeImg(small)
	assert.True(t, IsKind(err, PixelConversionError), "%v", err)

	// A PNG signature followed by garbage sniffs as an image but does not decode.
	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("\x89PNG\r\n\x1a\ngarbage"), 0644))
	_, err = decodeImg(broken)
	assert.True(t, IsKind(err, PixelConversionError), "%v", err)
}

func TestImage_ImgToNRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(-1, -1, 3, 3))
	// premultiplied half transparent white
	copy(rgba.Pix[rgba.PixOffset(0, 0):], []byte{128, 128, 128, 128})

	dst := imgToNRGBA(rgba)
	require.Equal(t, image.Rect(0, 0, 4, 4), dst.Bounds())
	c := dst.NRGBAAt(1, 1)
	assert.Equal(t, uint8(128), c.A)
	assert.Equal(t, uint8(255), c.R)
	assert.Zero(t, dst.NRGBAAt(0, 0).A)

	sub := dst.SubImage(image.Rect(1, 1, 3, 3))
	out := imgToNRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, c, out.NRGBAAt(0, 0))
}
