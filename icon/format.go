package icon

import (
	"strings"

	"github.com/pkg/errors"
)

// Format selects how the image payload of an entry is stored.
type Format int

const (
	// Auto stores 256 pixel entries as PNG and smaller ones as BMP.
	Auto Format = iota
	// PNG stores the entry as a PNG stream.
	PNG
	// BMP stores the entry as an uncompressed 32 bpp DIB with an AND mask.
	BMP
)

var formatNames = []string{"auto", "png", "bmp"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}
	return Auto, errors.Wrapf(ErrFormat, "%q", s)
}

// resolve picks the concrete payload format for an entry of the given size.
func (f Format) resolve(width, height int) (Format, error) {
	switch f {
	case PNG, BMP:
		return f, nil
	case Auto:
		if width >= MaxSize || height >= MaxSize {
			return PNG, nil
		}
		return BMP, nil
	}
	return f, errors.Wrapf(ErrFormat, "format %d", int(f))
}
