package icon

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Entry describes one image stored in an icon container.
type Entry struct {
	Width, Height int
	Colors        uint8
	Planes        uint16
	BitCount      uint16
	Size          uint32
	Offset        uint32
	// Format is PNG or BMP depending on the payload signature.
	Format Format
}

// Dir is the directory of an icon container.
type Dir struct {
	Entries []Entry
}

// ReadDir parses the header and directory entries of an icon container and
// checks that every payload lies within the data.
func ReadDir(r io.Reader) (*Dir, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, errors.Wrap(ErrInvalid, "short header")
	}
	if reserved := binary.LittleEndian.Uint16(data[0:]); reserved != 0 {
		return nil, errors.Wrapf(ErrInvalid, "reserved field is %d", reserved)
	}
	if typ := binary.LittleEndian.Uint16(data[2:]); typ != typeIcon {
		return nil, errors.Wrapf(ErrInvalid, "resource type %d", typ)
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	if count == 0 {
		return nil, errors.Wrap(ErrInvalid, "no entries")
	}
	if len(data) < headerSize+count*entrySize {
		return nil, errors.Wrap(ErrInvalid, "short directory")
	}

	dir := &Dir{Entries: make([]Entry, 0, count)}
	for i := 0; i < count; i++ {
		e := data[headerSize+i*entrySize:]
		entry := Entry{
			Width:    dimension(e[0]),
			Height:   dimension(e[1]),
			Colors:   e[2],
			Planes:   binary.LittleEndian.Uint16(e[4:]),
			BitCount: binary.LittleEndian.Uint16(e[6:]),
			Size:     binary.LittleEndian.Uint32(e[8:]),
			Offset:   binary.LittleEndian.Uint32(e[12:]),
			Format:   BMP,
		}
		end := uint64(entry.Offset) + uint64(entry.Size)
		if end > uint64(len(data)) {
			return nil, errors.Wrapf(ErrInvalid, "entry %d exceeds file size", i)
		}
		if bytes.HasPrefix(data[entry.Offset:end], pngSignature) {
			entry.Format = PNG
		}
		dir.Entries = append(dir.Entries, entry)
	}
	return dir, nil
}

func dimension(b uint8) int {
	if b == 0 {
		return MaxSize
	}
	return int(b)
}
