package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_MinMaxClamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(1.5, Max(1.5, -3.0))
	assert.Equal(256, Clamp(257, 1, 256))
	assert.Equal(1, Clamp(0, 1, 256))
	assert.Equal(100, Clamp(100, 1, 256))
}

func TestUtils_HasExt(t *testing.T) {
	assert := assert.New(t)

	assert.True(HasExt("icon.svg", ".svg"))
	assert.True(HasExt("ICON.SVG", ".svg"))
	assert.True(HasExt("dir/Icon.Svg", ".svg"))
	assert.False(HasExt("icon.svgz", ".svg"))
	assert.False(HasExt("svg", ".svg"))
	assert.True(HasExt("a.png", ".svg", ".png"))
	assert.False(HasExt("noext", ".svg"))
}

func TestUtils_Contains(t *testing.T) {
	assert.True(t, Contains([]string{".svg", ".png"}, ".png"))
	assert.False(t, Contains([]string{".svg"}, ".SVG"))
	assert.False(t, Contains([]int{}, 0))
}

func TestUtils_Stem(t *testing.T) {
	assert.Equal(t, "logo", Stem(filepath.Join("data", "SVG", "logo.svg")))
	assert.Equal(t, "logo.dark", Stem("logo.dark.SVG"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.png")
	// PNG signature followed by a few bytes is enough for sniffing.
	sig := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(path, sig, 0644))

	ftype, err := DetectContentType(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ftype)

	_, err = DetectContentType(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestUtils_DecorateText(t *testing.T) {
	NoColor = false
	s := DecorateText("ok", SuccessMessage)
	assert.True(t, strings.HasPrefix(s, SuccessColor))
	assert.True(t, strings.HasSuffix(s, DefaultColor))

	NoColor = true
	defer func() { NoColor = false }()
	assert.Equal(t, "ok", DecorateText("ok", ErrorMessage))
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("2m 3.00s", FormatTime(2*time.Minute+3*time.Second))
	assert.Equal("1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestUtils_Spinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "working", time.Millisecond, false)
	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.SetMessage("still working")
	s.Stop("finished\n")
	s.Stop("ignored")

	out := buf.String()
	assert.Contains(t, out, "working")
	assert.True(t, strings.HasSuffix(out, "finished\n"))
	assert.NotContains(t, out, "ignored")
}
