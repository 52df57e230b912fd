package layout

import "github.com/scigolib/hdf4/internal/section"

// Regular enumerates a Section against a variable stored as one contiguous
// (or already-linearized, e.g. post-decompression) byte run.
//
// baseOffset is added to every directive's SourcePos, so the same type
// serves both a real file address (contiguous, positioned mode) and a
// zero-based logical stream position (compressed, streaming mode).
type Regular struct {
	box        *boxEnumerator
	baseOffset int64
}

// NewRegular builds the enumerator for contiguous storage. fullShape is the variable's full
// shape (used to compute source element strides); sec is the already-
// completed requested Section.
func NewRegular(baseOffset int64, elementSize int64, fullShape []int64, sec section.Section) *Regular {
	origin := make([]int64, len(fullShape))
	return &Regular{
		box:        newBoxEnumerator(sec, fullBounds(sec), fullShape, origin, elementSize),
		baseOffset: baseOffset,
	}
}

func (r *Regular) Next() (CopyDirective, bool, error) {
	d, ok, err := r.box.Next()
	if !ok || err != nil {
		return CopyDirective{}, ok, err
	}
	d.SourcePos += r.baseOffset
	return d, true, nil
}
