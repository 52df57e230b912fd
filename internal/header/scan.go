package header

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/scigolib/hdf4/internal/coreerr"
)

// Magic is the four-byte signature every HDF4 file begins with.
var Magic = [4]byte{0x0e, 0x03, 0x13, 0x01}

// DDEntry is one Data Descriptor: a (tag, ref) pair naming an object,
// plus where its data lives.
type DDEntry struct {
	Tag    uint16
	Ref    uint16
	Offset int32
	Length int32
}

// firstBlockOffset is the fixed file offset of the first DD block header,
// immediately following the 4-byte magic number.
const firstBlockOffset = int64(4)

const ddEntrySize = 2 + 2 + 4 + 4 // tag, ref, offset, length

// IsValid reports whether r begins with the HDF4 magic number.
func IsValid(r io.ReaderAt) (bool, error) {
	var buf [4]byte
	n, err := r.ReadAt(buf[:], 0)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("header: reading magic: %w", err)
	}
	if n < 4 {
		return false, nil
	}
	return buf == Magic, nil
}

// Scan walks the full DD block chain starting at the fixed first-block
// offset and returns every DD entry found, in file order. A DD block
// whose declared entry count or next-block pointer would run past what
// has been read is reported as coreerr.ErrTruncated.
func Scan(r io.ReaderAt) ([]DDEntry, error) {
	var all []DDEntry
	offset := firstBlockOffset
	seen := map[int64]bool{} // guards against a cyclic next-block chain

	for offset != 0 {
		if seen[offset] {
			return nil, fmt.Errorf("header: cyclic DD block chain at offset %d: %w", offset, coreerr.ErrInternal)
		}
		seen[offset] = true

		entries, next, err := readBlock(r, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
		offset = next
	}
	return all, nil
}

// readBlock reads one DD block at offset: a uint16 entry count, that many
// fixed-width DDEntry records, and a trailing int32 offset of the next
// block (0 meaning none).
func readBlock(r io.ReaderAt, offset int64) ([]DDEntry, int64, error) {
	var countBuf [2]byte
	if _, err := r.ReadAt(countBuf[:], offset); err != nil {
		return nil, 0, fmt.Errorf("header: reading DD block count at %d: %w", offset, wrapShort(err))
	}
	count := binary.BigEndian.Uint16(countBuf[:])

	body := make([]byte, int(count)*ddEntrySize+4)
	if _, err := r.ReadAt(body, offset+2); err != nil {
		return nil, 0, fmt.Errorf("header: reading DD block body at %d: %w", offset, wrapShort(err))
	}

	entries := make([]DDEntry, count)
	for i := 0; i < int(count); i++ {
		e := body[i*ddEntrySize:]
		entries[i] = DDEntry{
			Tag:    binary.BigEndian.Uint16(e[0:2]),
			Ref:    binary.BigEndian.Uint16(e[2:4]),
			Offset: int32(binary.BigEndian.Uint32(e[4:8])),
			Length: int32(binary.BigEndian.Uint32(e[8:12])),
		}
	}

	next := int32(binary.BigEndian.Uint32(body[int(count)*ddEntrySize:]))
	return entries, int64(next), nil
}

func wrapShort(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %v", coreerr.ErrTruncated, err)
	}
	return err
}
