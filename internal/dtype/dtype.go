package dtype

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/scigolib/hdf4/internal/descriptor"
)

// Decode converts n elements of raw big-endian bytes of the scalar type dt
// into a newly allocated Go slice, returned as interface{} so callers can
// type-assert to the concrete []T they expect.
func Decode(dt descriptor.DataType, data []byte, n int64) (interface{}, error) {
	size := dt.Size()
	if size == 0 {
		return nil, fmt.Errorf("dtype: %s has no fixed scalar size", dt)
	}
	if int64(len(data)) < n*int64(size) {
		return nil, fmt.Errorf("dtype: need %d bytes for %d elements of %s, have %d", n*int64(size), n, dt, len(data))
	}

	switch dt {
	case descriptor.I8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(data[i])
		}
		return out, nil
	case descriptor.U8:
		out := make([]uint8, n)
		copy(out, data[:n])
		return out, nil
	case descriptor.CHAR:
		out := make([]byte, n)
		copy(out, data[:n])
		return out, nil
	case descriptor.I16:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
		}
		return out, nil
	case descriptor.U16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = binary.BigEndian.Uint16(data[i*2:])
		}
		return out, nil
	case descriptor.I32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(data[i*4:]))
		}
		return out, nil
	case descriptor.U32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = binary.BigEndian.Uint32(data[i*4:])
		}
		return out, nil
	case descriptor.I64:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(data[i*8:]))
		}
		return out, nil
	case descriptor.F32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.BigEndian.Uint32(data[i*4:]))
		}
		return out, nil
	case descriptor.F64:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(binary.BigEndian.Uint64(data[i*8:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("dtype: unsupported scalar type %s", dt)
	}
}

// DecodeString interprets n CHAR elements as a string, trimming one
// trailing NUL if present (HDF4 stores fixed-width character arrays
// without guaranteeing null-termination).
func DecodeString(data []byte, n int64) (string, error) {
	if int64(len(data)) < n {
		return "", fmt.Errorf("dtype: need %d CHAR bytes, have %d", n, len(data))
	}
	b := data[:n]
	if len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b), nil
}
