package layout

import (
	"github.com/scigolib/hdf4/internal/descriptor"
	"github.com/scigolib/hdf4/internal/section"
)

// Tiled enumerates a Section against a chunked variable.
//
// For each chunk, Tiled computes the intersection of the chunk's
// element-space box with the requested section and, if non-empty, emits
// directives whose SourcePos is relative to that chunk's own local byte
// space (ChunkIndex names which chunk). Chunks disjoint from the section
// are skipped entirely; chunks missing from the list are simply absent —
// the caller is responsible for pre-filling the destination with the fill
// value before driving this enumerator.
type Tiled struct {
	chunks      []descriptor.Chunk
	chunkShape  []int64
	elementSize int64
	sec         section.Section

	chunkPos int // index into chunks of the one currently draining
	cur      *boxEnumerator
}

// NewTiled builds the D3 enumerator over chunks, each chunkShape in
// element-space, for the completed Section sec.
func NewTiled(chunks []descriptor.Chunk, chunkShape []int64, elementSize int64, sec section.Section) *Tiled {
	return &Tiled{
		chunks:      chunks,
		chunkShape:  chunkShape,
		elementSize: elementSize,
		sec:         sec,
		chunkPos:    -1,
	}
}

func (t *Tiled) Next() (CopyDirective, bool, error) {
	for {
		if t.cur != nil {
			d, ok, err := t.cur.Next()
			if err != nil {
				return CopyDirective{}, false, err
			}
			if ok {
				d.ChunkIndex = t.chunkPos
				return d, true, nil
			}
			t.cur = nil
		}

		t.chunkPos++
		if t.chunkPos >= len(t.chunks) {
			return CopyDirective{}, false, nil
		}

		bounds, ok := intersectChunk(t.sec, t.chunks[t.chunkPos].Origin, t.chunkShape)
		if !ok {
			continue
		}
		t.cur = newBoxEnumerator(t.sec, bounds, t.chunkShape, t.chunks[t.chunkPos].Origin, t.elementSize)
	}
}

// intersectChunk computes, per dimension, the inclusive range of
// section-relative indices whose coordinate falls inside
// [origin, origin+chunkShape). ok is false when any dimension's range is
// empty, meaning the chunk is disjoint from the section.
func intersectChunk(sec section.Section, origin, chunkShape []int64) ([]bound, bool) {
	bounds := make([]bound, len(sec.Ranges))
	for d, r := range sec.Ranges {
		if r.Length == 0 {
			bounds[d] = bound{Lo: 0, Hi: -1}
			return bounds, false
		}
		lo := ceilDiv(origin[d]-r.Start, r.Stride)
		hi := floorDiv(origin[d]+chunkShape[d]-1-r.Start, r.Stride)
		if lo < 0 {
			lo = 0
		}
		if hi > r.Length-1 {
			hi = r.Length - 1
		}
		bounds[d] = bound{Lo: lo, Hi: hi}
		if hi < lo {
			return bounds, false
		}
	}
	return bounds, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
