package svgico

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxRenderPixels bounds the render buffer; a fitted image never exceeds the canvas.
const maxRenderPixels = CanvasSize * CanvasSize

// Document is a parsed SVG document together with its intrinsic size.
type Document struct {
	Width, Height float64
	icon          *oksvg.SvgIcon
}

// ParseDocument parses an SVG document. In strict mode elements and
// attributes the renderer does not support are reported as errors,
// otherwise they are skipped.
func ParseDocument(data []byte, strict bool) (*Document, error) {
	mode := oksvg.StrictErrorMode
	if !strict {
		mode = oksvg.IgnoreErrorMode
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), mode)
	if err != nil {
		return nil, &Error{Kind: ParseError, Err: err}
	}
	w, h, hasViewBox, err := intrinsicSize(data)
	if err != nil {
		return nil, &Error{Kind: ParseError, Err: err}
	}
	// Without a usable viewBox user units are pixels of the intrinsic size.
	// oksvg derives a missing viewBox from width and height with their
	// units stripped, so it is replaced whenever the attribute is absent.
	if !hasViewBox || !(icon.ViewBox.W > 0) || !(icon.ViewBox.H > 0) {
		icon.ViewBox.X, icon.ViewBox.Y = 0, 0
		icon.ViewBox.W, icon.ViewBox.H = w, h
	}
	return &Document{Width: w, Height: h, icon: icon}, nil
}

// Fit returns the placement of the document on the canvas.
func (d *Document) Fit() (Fit, error) {
	return NewFit(d.Width, d.Height)
}

// Render draws the document into a buffer of exactly fit.Width×fit.Height
// pixels. The viewport is mapped onto the scaled intrinsic size with no
// further translation.
func (d *Document) Render(fit Fit) (img *image.NRGBA, err error) {
	if fit.Width <= 0 || fit.Height <= 0 || fit.Width*fit.Height > maxRenderPixels {
		return nil, &Error{
			Kind: RenderError,
			Err:  fmt.Errorf("cannot allocate a %dx%d render buffer", fit.Width, fit.Height),
		}
	}
	// rasterx panics on some degenerate paths; the file is reported as failed instead.
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, &Error{Kind: RenderError, Err: fmt.Errorf("rasterizer: %v", r)}
		}
	}()

	rgba := image.NewRGBA(image.Rect(0, 0, fit.Width, fit.Height))
	d.icon.SetTarget(0, 0, d.Width*fit.Scale, d.Height*fit.Scale)

	scanner := rasterx.NewScannerGV(fit.Width, fit.Height, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(fit.Width, fit.Height, scanner)
	d.icon.Draw(raster, 1.0)

	return imgToNRGBA(rgba), nil
}

// Rasterize parses an SVG document and renders it scaled to fit and
// centered on a transparent CanvasSize×CanvasSize canvas.
func Rasterize(r io.Reader) (*image.NRGBA, error) {
	return (&Processor{}).Rasterize(r)
}

// Rasterize parses an SVG document and renders it scaled to fit and
// centered on a transparent CanvasSize×CanvasSize canvas.
func (p *Processor) Rasterize(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: IOError, Err: err}
	}
	doc, err := ParseDocument(data, !p.Lenient)
	if err != nil {
		return nil, err
	}
	fit, err := doc.Fit()
	if err != nil {
		return nil, err
	}
	src, err := doc.Render(fit)
	if err != nil {
		return nil, err
	}
	return composite(src, fit), nil
}

// composite draws src over a transparent canvas at the fit offsets.
func composite(src *image.NRGBA, fit Fit) *image.NRGBA {
	canvas := imaging.New(CanvasSize, CanvasSize, color.NRGBA{})
	return imaging.Overlay(canvas, src, image.Pt(fit.OffsetX, fit.OffsetY), 1.0)
}
