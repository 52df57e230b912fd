package layout

import "github.com/scigolib/hdf4/internal/section"

// bound is the inclusive range of section-relative indices [Lo, Hi] that
// are actually iterated along one dimension. Regular always iterates the
// full [0, length-1]; Tiled narrows this to the indices that fall inside
// one chunk's box.
type bound struct {
	Lo, Hi int64 // inclusive; Hi < Lo means the dimension contributes nothing
}

// fullBounds returns the bound that selects every index of sec.
func fullBounds(sec section.Section) []bound {
	b := make([]bound, len(sec.Ranges))
	for d, r := range sec.Ranges {
		if r.Length > 0 {
			b[d] = bound{Lo: 0, Hi: r.Length - 1}
		} else {
			b[d] = bound{Lo: 0, Hi: -1}
		}
	}
	return b
}

// boxEnumerator walks sec's selected indices restricted to bounds, mapping
// each selected index to a coordinate in sourceShape (offset by
// -sourceOrigin, so a chunk-local source can be addressed with its own
// shape) for the source position, and to the plain output shape for the
// destination position. Contiguous runs along the innermost dimension are
// merged into a single directive when that dimension's stride is 1.
type boxEnumerator struct {
	sec          section.Section
	bounds       []bound
	sourceShape  []int64
	sourceOrigin []int64
	elementSize  int64

	outStrides    []int64
	sourceStrides []int64

	idx  []int64 // current outer index per outer dimension (0..rank-2)
	last int64   // current index along the last dimension when it can't be merged
	done bool
}

// newBoxEnumerator builds an enumerator over sec restricted to bounds.
// sourceShape/sourceOrigin describe how section indices map to source
// element coordinates: coord_d = sec.Ranges[d].Start + i_d*Stride_d;
// source-local coord_d = coord_d - sourceOrigin_d.
func newBoxEnumerator(sec section.Section, bounds []bound, sourceShape, sourceOrigin []int64, elementSize int64) *boxEnumerator {
	rank := len(sec.Ranges)
	e := &boxEnumerator{
		sec:           sec,
		bounds:        bounds,
		sourceShape:   sourceShape,
		sourceOrigin:  sourceOrigin,
		elementSize:   elementSize,
		outStrides:    strides(sec.OutputShape()),
		sourceStrides: strides(sourceShape),
	}
	if rank == 0 {
		return e
	}
	e.idx = make([]int64, rank-1)
	for d := 0; d < rank-1; d++ {
		e.idx[d] = bounds[d].Lo
	}
	if rank-1 >= 0 {
		e.last = bounds[rank-1].Lo
	}
	for d := 0; d < rank; d++ {
		if bounds[d].Hi < bounds[d].Lo {
			e.done = true
			break
		}
	}
	return e
}

func (e *boxEnumerator) Next() (CopyDirective, bool, error) {
	if e.done {
		return CopyDirective{}, false, nil
	}
	rank := len(e.sec.Ranges)
	if rank == 0 {
		e.done = true
		return CopyDirective{SourcePos: 0, DestPos: 0, ElementCount: 1, ChunkIndex: -1}, true, nil
	}

	last := e.sec.Ranges[rank-1]
	lastBound := e.bounds[rank-1]

	sourceCoords := make([]int64, rank)
	destCoords := make([]int64, rank)
	for d := 0; d < rank-1; d++ {
		r := e.sec.Ranges[d]
		coord := r.Start + e.idx[d]*r.Stride
		sourceCoords[d] = coord - e.sourceOrigin[d]
		destCoords[d] = e.idx[d]
	}

	var count int64
	if last.Stride == 1 {
		coord := last.Start + lastBound.Lo
		sourceCoords[rank-1] = coord - e.sourceOrigin[rank-1]
		destCoords[rank-1] = lastBound.Lo
		count = lastBound.Hi - lastBound.Lo + 1
	} else {
		coord := last.Start + e.last*last.Stride
		sourceCoords[rank-1] = coord - e.sourceOrigin[rank-1]
		destCoords[rank-1] = e.last
		count = 1
	}

	directive := CopyDirective{
		SourcePos:    flatIndex(sourceCoords, e.sourceStrides) * e.elementSize,
		DestPos:      flatIndex(destCoords, e.outStrides) * e.elementSize,
		ElementCount: count,
		ChunkIndex:   -1,
	}

	e.advance(rank, lastBound)
	return directive, true, nil
}

func (e *boxEnumerator) advance(rank int, lastBound bound) {
	if e.sec.Ranges[rank-1].Stride != 1 {
		e.last++
		if e.last <= lastBound.Hi {
			return
		}
		e.last = lastBound.Lo
	}
	e.advanceOuter(rank)
}

// advanceOuter increments the outer-dimension odometer (dims 0..rank-2),
// innermost-of-the-outer-dims varying fastest, marking e.done on overflow.
func (e *boxEnumerator) advanceOuter(rank int) {
	for d := rank - 2; d >= 0; d-- {
		e.idx[d]++
		if e.idx[d] <= e.bounds[d].Hi {
			return
		}
		e.idx[d] = e.bounds[d].Lo
	}
	e.done = true
}
