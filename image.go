package svgico

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/svgico/utils"
	"golang.org/x/image/bmp"
)

// RasterFormat is the file format of the intermediate raster images.
type RasterFormat string

// Supported intermediate raster formats. Both keep the alpha channel.
const (
	FormatPNG RasterFormat = "png"
	FormatBMP RasterFormat = "bmp"
)

// ParseRasterFormat validates a raster format name.
func ParseRasterFormat(s string) (RasterFormat, error) {
	switch f := RasterFormat(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatBMP:
		return f, nil
	}
	return "", fmt.Errorf("unsupported raster format %q", s)
}

// Ext returns the file extension, including the leading dot.
func (f RasterFormat) Ext() string {
	if f == "" {
		return "." + string(FormatPNG)
	}
	return "." + string(f)
}

// encodeImg encodes an image to a destination of type io.Writer.
func encodeImg(w io.Writer, img image.Image, format RasterFormat) error {
	switch format {
	case "", FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported raster format %q", format)
}

// decodeImg reads back an intermediate raster image as a canvas.
func decodeImg(src string) (*image.NRGBA, error) {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, &Error{Kind: IOError, Path: src, Err: err}
	}
	if !strings.HasPrefix(ctype, "image/") {
		return nil, &Error{
			Kind: PixelConversionError,
			Path: src,
			Err:  fmt.Errorf("content type %s is not an image", ctype),
		}
	}

	img, err := imaging.Open(src)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, &Error{Kind: IOError, Path: src, Err: err}
		}
		return nil, &Error{Kind: PixelConversionError, Path: src, Err: err}
	}
	if b := img.Bounds(); b.Dx() != CanvasSize || b.Dy() != CanvasSize {
		return nil, &Error{
			Kind: PixelConversionError,
			Path: src,
			Err:  fmt.Errorf("raster is %dx%d, want %dx%d", b.Dx(), b.Dy(), CanvasSize, CanvasSize),
		}
	}
	return imgToNRGBA(img), nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.RGBA:
		// Un-premultiply the renderer output.
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				a := src.Pix[si+3]
				if a != 0 {
					dst.Pix[di+0] = unpremultiply(src.Pix[si+0], a)
					dst.Pix[di+1] = unpremultiply(src.Pix[si+1], a)
					dst.Pix[di+2] = unpremultiply(src.Pix[si+2], a)
					dst.Pix[di+3] = a
				}
				di += 4
				si += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}
	return dst
}

// unpremultiply matches color.NRGBAModel for 8 bit channels.
func unpremultiply(c, a uint8) uint8 {
	if a == 0xff {
		return c
	}
	// Same rounding as color.NRGBAModel: (c*0x101*0xffff/(a*0x101)) >> 8.
	v := uint32(c) * 0x101
	v = v * 0xffff / (uint32(a) * 0x101)
	return uint8(v >> 8)
}
