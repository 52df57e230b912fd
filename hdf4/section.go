package hdf4

import (
	"github.com/scigolib/hdf4/internal/section"
)

// Range selects a strided run of indices along one dimension: Length
// elements starting at Start, Stride elements apart. Stride must be >= 1.
type Range struct {
	Start  int64
	Length int64
	Stride int64
}

// Section is a hyperslab request against a variable: one Range per
// dimension, in the variable's declared dimension order.
type Section struct {
	Ranges []Range
}

// FullSection returns the Section that selects every element of a
// variable with the given shape, in order, with unit stride.
func FullSection(shape []int64) Section {
	return fromInternal(section.Full(shape))
}

func (s Section) toInternal() section.Section {
	out := section.Section{Ranges: make([]section.Range, len(s.Ranges))}
	for i, r := range s.Ranges {
		out.Ranges[i] = section.Range{Start: r.Start, Length: r.Length, Stride: r.Stride}
	}
	return out
}

func fromInternal(s section.Section) Section {
	out := Section{Ranges: make([]Range, len(s.Ranges))}
	for i, r := range s.Ranges {
		out.Ranges[i] = Range{Start: r.Start, Length: r.Length, Stride: r.Stride}
	}
	return out
}

// OutputShape returns the shape of the array a read of this Section
// produces: one entry per dimension, equal to that dimension's Length.
func (s Section) OutputShape() []int64 {
	return s.toInternal().OutputShape()
}
