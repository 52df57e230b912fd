package segio

import (
	"bytes"
	"io"
	"testing"

	"github.com/scigolib/hdf4/internal/descriptor"
)

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestSourceConcatenatesSegmentsInOrder(t *testing.T) {
	file := bytesReaderAt("AAAbbbbCCCCC")
	segs := []descriptor.Segment{
		{Offset: 0, Length: 3},
		{Offset: 3, Length: 4},
		{Offset: 7, Length: 5},
	}
	s := New(file, segs)

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, []byte("AAAbbbbCCCCC")) {
		t.Fatalf("got %q, want %q", got, "AAAbbbbCCCCC")
	}
}

func TestSourceSkipsZeroLengthSegments(t *testing.T) {
	file := bytesReaderAt("XY")
	segs := []descriptor.Segment{
		{Offset: 0, Length: 0},
		{Offset: 0, Length: 1},
		{Offset: 99, Length: 0},
		{Offset: 1, Length: 1},
	}
	s := New(file, segs)

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, []byte("XY")) {
		t.Fatalf("got %q, want %q", got, "XY")
	}
}

func TestSourceSmallReadsAcrossSegmentBoundary(t *testing.T) {
	file := bytesReaderAt("ab cd")
	segs := []descriptor.Segment{
		{Offset: 0, Length: 2},
		{Offset: 2, Length: 3},
	}
	s := New(file, segs)

	buf := make([]byte, 1)
	var got []byte
	for {
		n, err := s.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if !bytes.Equal(got, []byte("ab cd")) {
		t.Fatalf("got %q, want %q", got, "ab cd")
	}
}
