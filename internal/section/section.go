// Package section implements the hyperslab request type and its
// completion against a variable's shape.
package section

import (
	"fmt"

	"github.com/scigolib/hdf4/internal/coreerr"
)

// Range selects start, length, and stride along one dimension.
type Range struct {
	Start  int64
	Length int64
	Stride int64
}

// Section is one hyperslab request: one Range per dimension.
type Section struct {
	Ranges []Range
}

// Full returns a Section selecting every element of shape.
func Full(shape []int64) Section {
	ranges := make([]Range, len(shape))
	for d, extent := range shape {
		ranges[d] = Range{Start: 0, Length: extent, Stride: 1}
	}
	return Section{Ranges: ranges}
}

// Complete resolves a Section against shape: a nil Section becomes
// Full(shape); a non-nil Section must already name one Range per
// dimension and is validated against shape. A partial Section (fewer
// Ranges than dimensions) is not filled in; it is rejected as
// ErrInvalidSection.
func Complete(s *Section, shape []int64) (Section, error) {
	if s == nil {
		return Full(shape), nil
	}
	if len(s.Ranges) != len(shape) {
		return Section{}, fmt.Errorf("section has %d dimensions, shape has %d: %w",
			len(s.Ranges), len(shape), coreerr.ErrInvalidSection)
	}
	out := Section{Ranges: make([]Range, len(s.Ranges))}
	copy(out.Ranges, s.Ranges)
	for d, r := range out.Ranges {
		if r.Stride < 1 {
			return Section{}, fmt.Errorf("dimension %d: stride %d must be >= 1: %w",
				d, r.Stride, coreerr.ErrInvalidSection)
		}
		if r.Start < 0 {
			return Section{}, fmt.Errorf("dimension %d: start %d must be >= 0: %w",
				d, r.Start, coreerr.ErrInvalidSection)
		}
		if r.Length < 0 {
			return Section{}, fmt.Errorf("dimension %d: length %d must be >= 0: %w",
				d, r.Length, coreerr.ErrInvalidSection)
		}
		if r.Length > 0 {
			last := r.Start + (r.Length-1)*r.Stride
			if last >= shape[d] {
				return Section{}, fmt.Errorf("dimension %d: range [%d,+%d step %d) exceeds extent %d: %w",
					d, r.Start, r.Length, r.Stride, shape[d], coreerr.ErrInvalidSection)
			}
		}
	}
	return out, nil
}

// NumElements returns the product of each Range's Length — the element
// count of the resulting output array.
func (s Section) NumElements() int64 {
	n := int64(1)
	for _, r := range s.Ranges {
		n *= r.Length
	}
	return n
}

// OutputShape returns the dense shape of the array this section produces.
func (s Section) OutputShape() []int64 {
	shape := make([]int64, len(s.Ranges))
	for d, r := range s.Ranges {
		shape[d] = r.Length
	}
	return shape
}
