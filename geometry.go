package svgico

import (
	"fmt"
	"math"

	"github.com/esimov/svgico/utils"
)

// CanvasSize is the edge length of the square canvas every icon is normalized into.
const CanvasSize = 256

// Fit describes how a source of a given intrinsic size is placed on the canvas.
type Fit struct {
	// Scale is the uniform factor applied on both axes.
	Scale float64
	// Width and Height are the pixel dimensions of the rendered content.
	Width, Height int
	// OffsetX and OffsetY locate the rendered content on the canvas.
	OffsetX, OffsetY int
}

// NewFit computes the scale-to-fit and centering parameters for a source of
// intrinsic size w×h. The smaller of the two ratios is used, so the larger
// source dimension becomes the limiting axis and fills the canvas exactly.
func NewFit(w, h float64) (Fit, error) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Fit{}, &Error{
			Kind: InvalidGeometryError,
			Err:  fmt.Errorf("intrinsic size %gx%g must be positive", w, h),
		}
	}
	s := math.Min(CanvasSize/w, CanvasSize/h)

	// The ceiling avoids under-allocating the boundary pixel. Clamping absorbs
	// floating point overshoot such as ceil(256.00000000000003).
	tw := utils.Clamp(int(math.Ceil(w*s)), 1, CanvasSize)
	th := utils.Clamp(int(math.Ceil(h*s)), 1, CanvasSize)

	return Fit{
		Scale:   s,
		Width:   tw,
		Height:  th,
		OffsetX: (CanvasSize - tw) / 2,
		OffsetY: (CanvasSize - th) / 2,
	}, nil
}
