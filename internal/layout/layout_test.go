package layout

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/scigolib/hdf4/internal/coreerr"
	"github.com/scigolib/hdf4/internal/descriptor"
	"github.com/scigolib/hdf4/internal/section"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
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

func sectionOf(ranges ...[3]int64) section.Section {
	rs := make([]section.Range, len(ranges))
	for i, r := range ranges {
		rs[i] = section.Range{Start: r[0], Length: r[1], Stride: r[2]}
	}
	return section.Section{Ranges: rs}
}

func drain(t *testing.T, enum Enumerator) []CopyDirective {
	t.Helper()
	var out []CopyDirective
	for {
		d, ok, err := enum.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, d)
	}
}

func TestRegularFullSelectionMergesEachRow(t *testing.T) {
	// Contiguous runs merge along the innermost dimension only; with a
	// 2x3 shape that yields one directive per row.
	shape := []int64{2, 3}
	sec := section.Full(shape)
	enum := NewRegular(100, 4, shape, sec)
	got := drain(t, enum)
	if len(got) != 2 {
		t.Fatalf("expected 2 row runs, got %d directives: %+v", len(got), got)
	}
	if got[0].SourcePos != 100 || got[0].DestPos != 0 || got[0].ElementCount != 3 {
		t.Fatalf("row 0: %+v", got[0])
	}
	if got[1].SourcePos != 112 || got[1].DestPos != 12 || got[1].ElementCount != 3 {
		t.Fatalf("row 1: %+v", got[1])
	}
}

func TestRegularStridedLastDimensionOneElementPerDirective(t *testing.T) {
	shape := []int64{4}
	sec := sectionOf([3]int64{0, 2, 2}) // indices 0, 2
	enum := NewRegular(0, 4, shape, sec)
	got := drain(t, enum)
	if len(got) != 2 {
		t.Fatalf("expected 2 directives, got %d: %+v", len(got), got)
	}
	if got[0].SourcePos != 0 || got[0].ElementCount != 1 {
		t.Fatalf("directive 0: %+v", got[0])
	}
	if got[1].SourcePos != 8 || got[1].ElementCount != 1 {
		t.Fatalf("directive 1: %+v", got[1])
	}
}

func TestRegular2DRowsMergeAlongLastDim(t *testing.T) {
	shape := []int64{3, 4}
	sec := sectionOf([3]int64{1, 2, 1}, [3]int64{0, 4, 1}) // rows 1-2, all columns
	enum := NewRegular(0, 1, shape, sec)
	got := drain(t, enum)
	if len(got) != 2 {
		t.Fatalf("expected 2 row runs, got %d: %+v", len(got), got)
	}
	if got[0].SourcePos != 4 || got[0].ElementCount != 4 || got[0].DestPos != 0 {
		t.Fatalf("row 0: %+v", got[0])
	}
	if got[1].SourcePos != 8 || got[1].ElementCount != 4 || got[1].DestPos != 4 {
		t.Fatalf("row 1: %+v", got[1])
	}
}

func TestRegularScalar(t *testing.T) {
	enum := NewRegular(40, 8, nil, section.Section{})
	got := drain(t, enum)
	if len(got) != 1 || got[0].SourcePos != 40 || got[0].ElementCount != 1 {
		t.Fatalf("unexpected scalar directive: %+v", got)
	}
}

func TestSegmentedSplitsAtSegmentBoundary(t *testing.T) {
	// 8 elements of 1 byte each, laid out in two real segments: [0,5) and [5,8).
	segs := []descriptor.Segment{
		{Offset: 1000, Length: 5},
		{Offset: 2000, Length: 3},
	}
	shape := []int64{8}
	sec := section.Full(shape)
	enum := NewSegmented(segs, 1, shape, sec)
	got := drain(t, enum)
	if len(got) != 2 {
		t.Fatalf("expected split into 2 directives, got %d: %+v", len(got), got)
	}
	if got[0].SourcePos != 1000 || got[0].ElementCount != 5 || got[0].DestPos != 0 {
		t.Fatalf("directive 0: %+v", got[0])
	}
	if got[1].SourcePos != 2000 || got[1].ElementCount != 3 || got[1].DestPos != 5 {
		t.Fatalf("directive 1: %+v", got[1])
	}
}

func TestSegmentedSkipsZeroLengthSegments(t *testing.T) {
	segs := []descriptor.Segment{
		{Offset: 10, Length: 4},
		{Offset: 999, Length: 0},
		{Offset: 20, Length: 4},
	}
	shape := []int64{8}
	sec := section.Full(shape)
	enum := NewSegmented(segs, 1, shape, sec)
	got := drain(t, enum)
	if len(got) != 2 {
		t.Fatalf("expected 2 directives, got %d: %+v", len(got), got)
	}
	if got[1].SourcePos != 20 {
		t.Fatalf("expected second directive to skip the empty segment, got %+v", got[1])
	}
}

func TestSegmentedTruncatedRequest(t *testing.T) {
	segs := []descriptor.Segment{{Offset: 0, Length: 4}}
	shape := []int64{8} // more elements requested than segments provide
	sec := section.Full(shape)
	enum := NewSegmented(segs, 1, shape, sec)
	_, _, err := enum.Next()
	if err == nil || !errors.Is(err, coreerr.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestIntersectChunkDisjointSkipped(t *testing.T) {
	sec := sectionOf([3]int64{0, 2, 1}) // indices 0,1
	_, ok := intersectChunk(sec, []int64{10}, []int64{4})
	if ok {
		t.Fatal("expected disjoint chunk to be reported not-ok")
	}
}

func TestTiledCoversMultipleChunks(t *testing.T) {
	// 1D variable of 6 elements, chunked in chunks of 2: [0,2) [2,4) [4,6).
	chunks := []descriptor.Chunk{
		{Origin: []int64{0}, Data: descriptor.ChunkData{Contiguous: &struct{ Offset, Length int64 }{Offset: 0, Length: 2}}},
		{Origin: []int64{2}, Data: descriptor.ChunkData{Contiguous: &struct{ Offset, Length int64 }{Offset: 100, Length: 2}}},
		{Origin: []int64{4}, Data: descriptor.ChunkData{Contiguous: &struct{ Offset, Length int64 }{Offset: 200, Length: 2}}},
	}
	sec := section.Full([]int64{6})
	enum := NewTiled(chunks, []int64{2}, 1, sec)
	got := drain(t, enum)

	want := map[int][]CopyDirective{
		0: {{SourcePos: 0, DestPos: 0, ElementCount: 2, ChunkIndex: 0}},
		1: {{SourcePos: 0, DestPos: 2, ElementCount: 2, ChunkIndex: 1}},
		2: {{SourcePos: 0, DestPos: 4, ElementCount: 2, ChunkIndex: 2}},
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 directives, got %d: %+v", len(got), got)
	}
	for _, d := range got {
		exp := want[d.ChunkIndex][0]
		if d != exp {
			t.Fatalf("chunk %d: got %+v, want %+v", d.ChunkIndex, d, exp)
		}
	}
}

func TestTiledPartialChunkOverlap(t *testing.T) {
	// Chunk covers elements [2,6); section selects elements [0,4).
	chunks := []descriptor.Chunk{
		{Origin: []int64{2}, Data: descriptor.ChunkData{Contiguous: &struct{ Offset, Length int64 }{Offset: 0, Length: 4}}},
	}
	sec := sectionOf([3]int64{0, 4, 1})
	enum := NewTiled(chunks, []int64{4}, 1, sec)
	got := drain(t, enum)
	if len(got) != 1 {
		t.Fatalf("expected 1 directive, got %d: %+v", len(got), got)
	}
	d := got[0]
	// section indices 2,3 fall inside the chunk (local offsets 0,1); dest at 2,3.
	if d.SourcePos != 0 || d.ElementCount != 2 || d.DestPos != 2 {
		t.Fatalf("unexpected directive: %+v", d)
	}
}

func TestExecutePositionedCopiesBytes(t *testing.T) {
	src := bytesReaderAt("0123456789")
	shape := []int64{10}
	sec := section.Full(shape)
	enum := NewRegular(0, 1, shape, sec)
	dst := make([]byte, 10)
	if err := ExecutePositioned(context.Background(), dst, 1, src, enum); err != nil {
		t.Fatalf("ExecutePositioned: %v", err)
	}
	if string(dst) != "0123456789" {
		t.Fatalf("got %q", dst)
	}
}

func TestExecuteStreamingDiscardsSkippedBytes(t *testing.T) {
	// Select only the even-indexed bytes of a 6-byte logical stream.
	shape := []int64{6}
	sec := sectionOf([3]int64{0, 3, 2})
	enum := NewRegular(0, 1, shape, sec)
	dst := make([]byte, 3)
	if err := ExecuteStreaming(context.Background(), dst, 1, bytes.NewReader([]byte("abcdef")), enum); err != nil {
		t.Fatalf("ExecuteStreaming: %v", err)
	}
	if string(dst) != "ace" {
		t.Fatalf("got %q, want %q", dst, "ace")
	}
}

func TestExecuteChunkedFillsGapsLeftUntouched(t *testing.T) {
	file := bytesReaderAt("XY")
	chunks := []descriptor.Chunk{
		{Origin: []int64{0}, Data: descriptor.ChunkData{Contiguous: &struct{ Offset, Length int64 }{Offset: 0, Length: 2}}},
		// No chunk covers elements [2,4): destination should stay at its
		// pre-filled value.
	}
	sec := section.Full([]int64{4})
	enum := NewTiled(chunks, []int64{2}, 1, sec)
	dst := []byte{9, 9, 9, 9}
	if err := ExecuteChunked(context.Background(), dst, 1, file, chunks, enum); err != nil {
		t.Fatalf("ExecuteChunked: %v", err)
	}
	if !bytes.Equal(dst, []byte{'X', 'Y', 9, 9}) {
		t.Fatalf("got %v", dst)
	}
}

func TestExecutePositionedRespectsCancelledContext(t *testing.T) {
	src := bytesReaderAt("0123456789")
	shape := []int64{10}
	sec := section.Full(shape)
	enum := NewRegular(0, 1, shape, sec)
	dst := make([]byte, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ExecutePositioned(ctx, dst, 1, src, enum)
	if !errors.Is(err, coreerr.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
