package svgico

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/esimov/svgico/icon"
)

// Processor options
type Processor struct {
	// RasterFormat is the format of the intermediate raster files.
	RasterFormat RasterFormat
	// EntryFormat selects how the image is stored inside the icon.
	EntryFormat icon.Format
	// Lenient skips SVG features the renderer does not support
	// instead of failing the file.
	Lenient bool
	// Verify decodes every written icon and checks its dimensions.
	Verify bool
}

// Pack encodes the canvas as a single entry icon and writes it to w.
func (p *Processor) Pack(w io.Writer, img image.Image) error {
	if err := icon.Encode(w, img, p.EntryFormat); err != nil {
		switch {
		case errors.Is(err, icon.ErrPixelBuffer):
			return &Error{Kind: PixelConversionError, Err: err}
		case errors.Is(err, icon.ErrDimensions), errors.Is(err, icon.ErrFormat):
			return &Error{Kind: EncodeError, Err: err}
		}
		return &Error{Kind: IOError, Err: err}
	}
	return nil
}

// Process converts one SVG file. The canvas is written to rasterPath, read
// back from disk and packaged into iconPath.
func (p *Processor) Process(svgPath, rasterPath, iconPath string) error {
	in, err := os.Open(svgPath)
	if err != nil {
		return &Error{Kind: IOError, Path: svgPath, Err: err}
	}
	defer in.Close()

	canvas, err := p.Rasterize(in)
	if err != nil {
		return newError(IOError, svgPath, err)
	}
	if err := p.writeRaster(rasterPath, canvas); err != nil {
		return err
	}

	img, err := decodeImg(rasterPath)
	if err != nil {
		return err
	}
	if err := p.writeIcon(iconPath, img); err != nil {
		return err
	}
	if p.Verify {
		return verifyIcon(iconPath)
	}
	return nil
}

func (p *Processor) writeRaster(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := encodeImg(&buf, img, p.RasterFormat); err != nil {
		return &Error{Kind: EncodeError, Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &Error{Kind: IOError, Path: path, Err: err}
	}
	return nil
}

func (p *Processor) writeIcon(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := p.Pack(&buf, img); err != nil {
		return newError(EncodeError, path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &Error{Kind: IOError, Path: path, Err: err}
	}
	return nil
}

// verifyIcon decodes a written icon and checks it holds a full canvas.
func verifyIcon(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &Error{Kind: IOError, Path: path, Err: err}
	}
	defer f.Close()

	img, err := icon.Decode(f)
	if err != nil {
		return &Error{Kind: EncodeError, Path: path, Err: err}
	}
	if b := img.Bounds(); b.Dx() != CanvasSize || b.Dy() != CanvasSize {
		return &Error{
			Kind: EncodeError,
			Path: path,
			Err:  fmt.Errorf("icon decodes to %dx%d", b.Dx(), b.Dy()),
		}
	}
	return nil
}
