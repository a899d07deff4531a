package icon

import (
	"encoding/binary"
	"image"
	"io"
)

const dibHeaderSize = 40

// encodeDIB writes m as a BITMAPINFOHEADER bitmap the way icon entries store
// it: no file header, the declared height covers both the color rows and
// the AND mask, rows run bottom-up, pixels are BGRA.
func encodeDIB(w io.Writer, m *image.NRGBA) error {
	width, height := m.Rect.Dx(), m.Rect.Dy()
	maskStride := (width + 31) / 32 * 4
	colorSize := width * height * 4
	maskSize := maskStride * height

	buf := make([]byte, dibHeaderSize+colorSize+maskSize)
	binary.LittleEndian.PutUint32(buf[0:], dibHeaderSize)
	binary.LittleEndian.PutUint32(buf[4:], uint32(width))
	binary.LittleEndian.PutUint32(buf[8:], uint32(2*height))
	binary.LittleEndian.PutUint16(buf[12:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[14:], 32) // bits per pixel
	// compression BI_RGB and the resolution fields stay 0
	binary.LittleEndian.PutUint32(buf[20:], uint32(colorSize+maskSize))

	color := buf[dibHeaderSize : dibHeaderSize+colorSize]
	mask := buf[dibHeaderSize+colorSize:]
	for y := 0; y < height; y++ {
		src := m.Pix[y*m.Stride : y*m.Stride+width*4]
		row := height - 1 - y
		dst := color[row*width*4 : (row+1)*width*4]
		for x := 0; x < width; x++ {
			r, g, b, a := src[x*4], src[x*4+1], src[x*4+2], src[x*4+3]
			dst[x*4+0] = b
			dst[x*4+1] = g
			dst[x*4+2] = r
			dst[x*4+3] = a
			if a == 0 {
				mask[row*maskStride+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	_, err := w.Write(buf)
	return err
}
