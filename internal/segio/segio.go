// Package segio presents an ordered list of (offset, length) file segments
// as a single contiguous, forward-only byte stream.
//
// This mirrors the chunk-table walk in ianlewis-go-dictzip's Reader: each
// logical position maps to a segment index plus an in-segment offset, and
// the underlying random-access file is read one whole segment at a time,
// only once the stream reaches that segment.
package segio

import (
	"fmt"
	"io"

	"github.com/scigolib/hdf4/internal/descriptor"
)

// Source reads the logical concatenation of a segment list. It is
// single-pass and non-restartable: once bytes are consumed they cannot be
// re-read without constructing a new Source.
type Source struct {
	raf      io.ReaderAt
	segments []descriptor.Segment

	idx int    // index of the segment currently buffered
	buf []byte // bytes of the current segment
	pos int    // read position within buf
}

// New returns a Source over raf reading the given segments in order.
// Zero-length segments are skipped.
func New(raf io.ReaderAt, segments []descriptor.Segment) *Source {
	return &Source{raf: raf, segments: segments, idx: -1}
}

// Read implements io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if s.pos >= len(s.buf) {
			if err := s.advance(); err != nil {
				if total > 0 {
					return total, nil
				}
				return 0, err
			}
		}
		n := copy(p[total:], s.buf[s.pos:])
		s.pos += n
		total += n
	}
	return total, nil
}

// advance moves to the next non-empty segment and buffers it, skipping any
// zero-length entries. It returns io.EOF once all segments are exhausted.
func (s *Source) advance() error {
	for {
		s.idx++
		if s.idx >= len(s.segments) {
			return io.EOF
		}
		seg := s.segments[s.idx]
		if seg.Length == 0 {
			continue
		}
		buf := make([]byte, seg.Length)
		if _, err := s.raf.ReadAt(buf, seg.Offset); err != nil {
			return fmt.Errorf("reading segment %d at offset %d: %w", s.idx, seg.Offset, err)
		}
		s.buf = buf
		s.pos = 0
		return nil
	}
}
