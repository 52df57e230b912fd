package hdf4

import (
	"fmt"

	"github.com/scigolib/hdf4/internal/descriptor"
	"github.com/scigolib/hdf4/internal/dtype"
)

// Array is the typed result of reading a Section of a Variable. Shape
// gives the dimensions of the result (matching the requested Section's
// OutputShape); Values holds Shape's product elements in row-major order
// as one of []int8, []uint8, []int16, []uint16, []int32, []uint32,
// []int64, []float32, []float64, or []byte (for CHAR).
type Array struct {
	Shape    []int64
	DataType descriptor.DataType
	Values   interface{}
}

// NumElements returns the product of Shape, or 1 for a scalar result.
func (a Array) NumElements() int64 {
	n := int64(1)
	for _, s := range a.Shape {
		n *= s
	}
	return n
}

// String renders a CHAR array as a string, trimming one trailing NUL byte
// if present. Returns an error for any other DataType.
func (a Array) String() (string, error) {
	if a.DataType != descriptor.CHAR {
		return "", fmt.Errorf("hdf4: Array.String: data type is %s, not CHAR", a.DataType)
	}
	b, ok := a.Values.([]byte)
	if !ok {
		return "", fmt.Errorf("hdf4: Array.String: unexpected underlying type %T", a.Values)
	}
	return dtype.DecodeString(b, int64(len(b)))
}

// buildArray decodes raw row-major big-endian bytes into a typed Array.
func buildArray(dt descriptor.DataType, shape []int64, raw []byte, n int64) (Array, error) {
	if dt == descriptor.CHAR {
		b := make([]byte, n)
		copy(b, raw[:n])
		return Array{Shape: shape, DataType: dt, Values: b}, nil
	}
	values, err := dtype.Decode(dt, raw, n)
	if err != nil {
		return Array{}, err
	}
	return Array{Shape: shape, DataType: dt, Values: values}, nil
}
