package svgico

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_Invariants(t *testing.T) {
	sizes := []float64{0.001, 0.3, 1, 7, 10, 24, 50, 99.5, 100, 255, 256, 257, 333.33, 1000, 4096, 1e6}
	for _, w := range sizes {
		for _, h := range sizes {
			fit, err := NewFit(w, h)
			require.NoError(t, err, "%gx%g", w, h)

			if fit.Width > CanvasSize || fit.Height > CanvasSize {
				t.Fatalf("%gx%g: %dx%d exceeds the canvas", w, h, fit.Width, fit.Height)
			}
			if max(fit.Width, fit.Height) != CanvasSize {
				t.Fatalf("%gx%g: %dx%d does not fill the limiting axis", w, h, fit.Width, fit.Height)
			}
			if fit.OffsetX != (CanvasSize-fit.Width)/2 || fit.OffsetY != (CanvasSize-fit.Height)/2 {
				t.Fatalf("%gx%g: offsets %d,%d are not centered", w, h, fit.OffsetX, fit.OffsetY)
			}
			if fit.OffsetX+fit.Width > CanvasSize || fit.OffsetY+fit.Height > CanvasSize {
				t.Fatalf("%gx%g: content leaves the canvas", w, h)
			}
			assert.InDelta(t, math.Min(CanvasSize/w, CanvasSize/h), fit.Scale, 1e-12)
		}
	}
}

func TestFit_Cases(t *testing.T) {
	testCases := []struct {
		name       string
		w, h       float64
		tw, th     int
		offX, offY int
	}{
		{"square", 10, 10, 256, 256, 0, 0},
		{"exact", 256, 256, 256, 256, 0, 0},
		{"landscape", 100, 50, 256, 128, 0, 64},
		{"portrait", 50, 100, 128, 256, 64, 0},
		// 256/3*1 = 85.33 is rounded up; the odd leftover pixel goes to the right.
		{"ceil", 300, 100, 256, 86, 0, 85},
		{"odd leftover", 256, 255, 256, 255, 0, 0},
		{"extreme", 1e6, 1, 256, 1, 0, 127},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fit, err := NewFit(tc.w, tc.h)
			require.NoError(t, err)
			assert.Equal(t, tc.tw, fit.Width)
			assert.Equal(t, tc.th, fit.Height)
			assert.Equal(t, tc.offX, fit.OffsetX)
			assert.Equal(t, tc.offY, fit.OffsetY)
		})
	}
}

func TestFit_InvalidGeometry(t *testing.T) {
	for _, size := range [][2]float64{
		{0, 10}, {10, 0}, {0, 0}, {-5, 10}, {10, -1}, {math.NaN(), 10}, {math.Inf(1), 10},
	} {
		_, err := NewFit(size[0], size[1])
		assert.True(t, IsKind(err, InvalidGeometryError), "%v: %v", size, err)
	}
}
