package layout

import (
	"fmt"

	"github.com/scigolib/hdf4/internal/coreerr"
	"github.com/scigolib/hdf4/internal/descriptor"
	"github.com/scigolib/hdf4/internal/section"
)

// Segmented enumerates a Section against a variable stored as a linked list
// of real on-disk byte ranges (descriptor.StorageLinked), read in positioned
// mode. It first computes directives against the variable's zero-based
// logical element space exactly as Regular would, then splits each one at
// segment boundaries and rewrites SourcePos to the real file offset of
// whichever segment covers that slice. A directive that crosses a
// segment boundary becomes more than one output directive; none ever
// straddles two segments.
type Segmented struct {
	box         *boxEnumerator
	segments    []descriptor.Segment
	elementSize int64

	pending []CopyDirective
}

// NewSegmented builds the enumerator. fullShape and sec describe the
// logical element space exactly as for NewRegular; segments lists the
// variable's on-disk byte ranges in stream order.
func NewSegmented(segments []descriptor.Segment, elementSize int64, fullShape []int64, sec section.Section) *Segmented {
	origin := make([]int64, len(fullShape))
	return &Segmented{
		box:         newBoxEnumerator(sec, fullBounds(sec), fullShape, origin, elementSize),
		segments:    segments,
		elementSize: elementSize,
	}
}

func (s *Segmented) Next() (CopyDirective, bool, error) {
	for len(s.pending) == 0 {
		d, ok, err := s.box.Next()
		if err != nil {
			return CopyDirective{}, false, err
		}
		if !ok {
			return CopyDirective{}, false, nil
		}
		split, err := s.split(d)
		if err != nil {
			return CopyDirective{}, false, err
		}
		s.pending = split
	}
	d := s.pending[0]
	s.pending = s.pending[1:]
	return d, true, nil
}

// split rewrites one logical-space directive into one or more directives
// addressed to real file offsets, cutting wherever it crosses a segment
// boundary.
func (s *Segmented) split(d CopyDirective) ([]CopyDirective, error) {
	logicalStart := d.SourcePos
	remaining := d.ElementCount
	destPos := d.DestPos

	var out []CopyDirective
	for remaining > 0 {
		seg, segLogicalStart, ok := s.segmentAt(logicalStart)
		if !ok {
			return nil, fmt.Errorf("layout: logical offset %d past end of segment list: %w", logicalStart, coreerr.ErrTruncated)
		}
		offsetInSeg := logicalStart - segLogicalStart
		if offsetInSeg%s.elementSize != 0 {
			return nil, fmt.Errorf("layout: segment boundary not element-aligned at logical offset %d: %w", logicalStart, coreerr.ErrInternal)
		}
		availableBytes := seg.Length - offsetInSeg
		availableElems := availableBytes / s.elementSize
		if availableElems <= 0 {
			return nil, fmt.Errorf("layout: zero-length segment span at logical offset %d: %w", logicalStart, coreerr.ErrInternal)
		}

		n := remaining
		if n > availableElems {
			n = availableElems
		}

		out = append(out, CopyDirective{
			SourcePos:    seg.Offset + offsetInSeg,
			DestPos:      destPos,
			ElementCount: n,
			ChunkIndex:   -1,
		})

		logicalStart += n * s.elementSize
		destPos += n * s.elementSize
		remaining -= n
	}
	return out, nil
}

// segmentAt finds the segment covering logical byte offset pos, along with
// that segment's own logical start offset.
func (s *Segmented) segmentAt(pos int64) (descriptor.Segment, int64, bool) {
	base := int64(0)
	for _, seg := range s.segments {
		if seg.Length == 0 {
			continue
		}
		if pos >= base && pos < base+seg.Length {
			return seg, base, true
		}
		base += seg.Length
	}
	return descriptor.Segment{}, 0, false
}
