package svgico

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/svgico/icon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_ProcessWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(src, []byte(filledSVG(100, 50)), 0644))

	p := &Processor{Verify: true}
	rasterPath := filepath.Join(dir, "logo.png")
	iconPath := filepath.Join(dir, "logo.ico")
	require.NoError(t, p.Process(src, rasterPath, iconPath))

	f, err := os.Open(iconPath)
	require.NoError(t, err)
	defer f.Close()
	d, err := icon.ReadDir(f)
	require.NoError(t, err)
	require.Len(t, d.Entries, 1)
	assert.Equal(t, icon.PNG, d.Entries[0].Format)
	assert.Equal(t, CanvasSize, d.Entries[0].Width)
	assert.Equal(t, CanvasSize, d.Entries[0].Height)

	raster, err := decodeImg(rasterPath)
	require.NoError(t, err)
	assert.Zero(t, raster.NRGBAAt(0, 0).A)
}

func TestProcessor_ProcessFailures(t *testing.T) {
	dir := t.TempDir()
	p := &Processor{}

	err := p.Process(filepath.Join(dir, "missing.svg"), filepath.Join(dir, "m.png"), filepath.Join(dir, "m.ico"))
	assert.True(t, IsKind(err, IOError), "%v", err)

	src := filepath.Join(dir, "ok.svg")
	require.NoError(t, os.WriteFile(src, []byte(filledSVG(10, 10)), 0644))
	err = p.Process(src, filepath.Join(dir, "no", "such", "ok.png"), filepath.Join(dir, "ok.ico"))
	assert.True(t, IsKind(err, IOError), "%v", err)
	assert.NoFileExists(t, filepath.Join(dir, "ok.ico"))
}

func TestProcessor_VerifyRejectsForeignIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.ico")
	data, err := icon.Pack(imageOfSize(16, 16), icon.Auto)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	err = verifyIcon(path)
	assert.True(t, IsKind(err, EncodeError), "%v", err)
}
