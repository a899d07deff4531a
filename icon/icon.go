package icon

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/pkg/errors"
	ico "github.com/sergeymakinen/go-ico"
)

// MaxSize is the largest width and height an icon entry can declare.
const MaxSize = 256

const (
	headerSize = 6
	entrySize  = 16

	typeIcon = 1
)

var (
	// ErrDimensions is returned for images which are empty or larger than MaxSize.
	ErrDimensions = errors.New("icon: unsupported image dimensions")
	// ErrFormat is returned for an unknown entry format.
	ErrFormat = errors.New("icon: unknown entry format")
	// ErrPixelBuffer is returned when a pixel buffer does not match its declared size.
	ErrPixelBuffer = errors.New("icon: pixel buffer does not match image dimensions")
	// ErrInvalid is returned when reading data which is not an icon container.
	ErrInvalid = errors.New("icon: invalid icon container")
)

// FromRGBA wraps a tightly packed, non premultiplied RGBA pixel buffer of
// width×height pixels into an image. The buffer is not copied.
func FromRGBA(width, height int, pix []byte) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrDimensions, "%dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, errors.Wrapf(ErrPixelBuffer, "%dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pix))
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Pack encodes img as a single entry icon container and returns its bytes.
func Pack(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes img to w as an icon container holding exactly one entry.
func Encode(w io.Writer, img image.Image, format Format) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 || width > MaxSize || height > MaxSize {
		return errors.Wrapf(ErrDimensions, "%dx%d, entries must be between 1 and %d pixels", width, height, MaxSize)
	}
	f, err := format.resolve(width, height)
	if err != nil {
		return err
	}
	m, err := packed(img)
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	switch f {
	case PNG:
		if err := png.Encode(&payload, m); err != nil {
			return errors.Wrap(err, "icon: encode png entry")
		}
	case BMP:
		if err := encodeDIB(&payload, m); err != nil {
			return errors.Wrap(err, "icon: encode bmp entry")
		}
	}

	bw := bufio.NewWriter(w)
	hdr := make([]byte, headerSize+entrySize)
	binary.LittleEndian.PutUint16(hdr[2:], typeIcon)
	binary.LittleEndian.PutUint16(hdr[4:], 1)

	// A single directory entry; the payload follows it immediately.
	// Color count and reserved bytes stay 0 for true color images.
	e := hdr[headerSize:]
	e[0] = sizeByte(width)
	e[1] = sizeByte(height)
	binary.LittleEndian.PutUint16(e[4:], 1)
	binary.LittleEndian.PutUint16(e[6:], 32)
	binary.LittleEndian.PutUint32(e[8:], uint32(payload.Len()))
	binary.LittleEndian.PutUint32(e[12:], uint32(len(hdr)))

	if _, err := bw.Write(hdr); err != nil {
		return err
	}
	if _, err := payload.WriteTo(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode decodes the image stored in an icon container.
// When the container holds several entries the largest one is returned.
func Decode(r io.Reader) (image.Image, error) {
	img, err := ico.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "icon: decode")
	}
	return img, nil
}

// sizeByte stores an entry dimension; 256 does not fit a byte and is written as 0.
func sizeByte(v int) uint8 {
	if v >= MaxSize {
		return 0
	}
	return uint8(v)
}

// packed returns img as a tightly packed *image.NRGBA with its origin at (0, 0).
func packed(img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	if m, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		need := m.Stride*(b.Dy()-1) + b.Dx()*4
		if m.Stride < b.Dx()*4 || len(m.Pix) < need {
			return nil, errors.Wrapf(ErrPixelBuffer, "stride %d, %d bytes for %dx%d",
				m.Stride, len(m.Pix), b.Dx(), b.Dy())
		}
		if m.Stride == b.Dx()*4 {
			return FromRGBA(b.Dx(), b.Dy(), m.Pix[:need:need])
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}
