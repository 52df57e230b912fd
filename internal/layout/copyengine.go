package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/scigolib/hdf4/internal/coreerr"
	"github.com/scigolib/hdf4/internal/deflate"
	"github.com/scigolib/hdf4/internal/descriptor"
	"github.com/scigolib/hdf4/internal/segio"
)

// checkCancel reports a wrapped Cancelled error once ctx is done, and nil
// otherwise. Called between directives so a cancellation trips at the next
// outer-dimension step (Regular, Segmented) or chunk boundary (Tiled)
// rather than only at the start of the call.
func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("layout: %w: %v", coreerr.ErrCancelled, ctx.Err())
	default:
		return nil
	}
}

// ExecutePositioned drives enum to completion against src, an io.ReaderAt
// over real file bytes, writing every directive's elements into dst.
// Used for uncompressed contiguous and linked storage.
func ExecutePositioned(ctx context.Context, dst []byte, elementSize int64, src io.ReaderAt, enum Enumerator) error {
	for {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		d, ok, err := enum.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		n := d.ElementCount * elementSize
		span := dst[d.DestPos : d.DestPos+n]
		if _, err := io.ReadFull(io.NewSectionReader(src, d.SourcePos, n), span); err != nil {
			return fmt.Errorf("layout: reading %d bytes at offset %d: %w", n, d.SourcePos, wrapReadErr(err))
		}
	}
}

// ExecuteStreaming drives enum against src, a single-pass io.Reader (a
// decompressed logical stream), writing every directive's elements into
// dst. Directives must arrive in source-ascending order; bytes between
// one directive's end and the next one's start are discarded by reading
// and throwing them away, since src cannot seek backward or forward.
func ExecuteStreaming(ctx context.Context, dst []byte, elementSize int64, src io.Reader, enum Enumerator) error {
	var pos int64
	for {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		d, ok, err := enum.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if d.SourcePos < pos {
			return fmt.Errorf("layout: streaming directive at %d precedes current stream position %d: %w", d.SourcePos, pos, coreerr.ErrInternal)
		}
		if skip := d.SourcePos - pos; skip > 0 {
			if _, err := io.CopyN(io.Discard, src, skip); err != nil {
				return fmt.Errorf("layout: skipping %d bytes to reach offset %d: %w", skip, d.SourcePos, wrapReadErr(err))
			}
			pos += skip
		}
		n := d.ElementCount * elementSize
		span := dst[d.DestPos : d.DestPos+n]
		if _, err := io.ReadFull(src, span); err != nil {
			return fmt.Errorf("layout: reading %d bytes at stream offset %d: %w", n, d.SourcePos, wrapReadErr(err))
		}
		pos += n
	}
}

// ChunkReaderAt exposes one chunk's decompressed (or raw) element bytes for
// random access, addressed starting at 0 as the Tiled enumerator expects.
type ChunkReaderAt interface {
	io.ReaderAt
}

// ExecuteChunked drives a Tiled enumerator to completion, materializing
// each chunk it touches on first reference and reusing that materialization
// for every subsequent directive carrying the same ChunkIndex. Chunks are
// released as soon as the enumerator moves past them, since Tiled visits
// chunks in ascending order and never revisits one.
func ExecuteChunked(ctx context.Context, dst []byte, elementSize int64, raf io.ReaderAt, chunks []descriptor.Chunk, enum Enumerator) error {
	curIndex := -1
	var cur ChunkReaderAt

	for {
		if err := checkCancel(ctx); err != nil {
			return err
		}
		d, ok, err := enum.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if d.ChunkIndex < 0 || d.ChunkIndex >= len(chunks) {
			return fmt.Errorf("layout: directive references chunk %d out of range [0,%d): %w", d.ChunkIndex, len(chunks), coreerr.ErrInternal)
		}
		if d.ChunkIndex != curIndex {
			cur, err = materializeChunk(raf, chunks[d.ChunkIndex])
			if err != nil {
				return fmt.Errorf("layout: materializing chunk %d: %w", d.ChunkIndex, err)
			}
			curIndex = d.ChunkIndex
		}

		n := d.ElementCount * elementSize
		span := dst[d.DestPos : d.DestPos+n]
		if _, err := io.ReadFull(io.NewSectionReader(cur, d.SourcePos, n), span); err != nil {
			return fmt.Errorf("layout: reading %d bytes at chunk offset %d: %w", n, d.SourcePos, wrapReadErr(err))
		}
	}
}

// materializeChunk builds a random-access view of one chunk's element
// bytes. Raw chunks are read directly off the file via a SectionReader;
// compressed chunks are fully decompressed into memory, since their
// element-space addressing requires random access that a single-pass
// decompressor cannot offer on its own.
func materializeChunk(raf io.ReaderAt, c descriptor.Chunk) (ChunkReaderAt, error) {
	if c.Data.Contiguous != nil {
		return io.NewSectionReader(raf, c.Data.Contiguous.Offset, c.Data.Contiguous.Length), nil
	}
	if c.Data.Compression == nil {
		return nil, fmt.Errorf("chunk has neither contiguous nor compressed data: %w", coreerr.ErrInternal)
	}

	spec := c.Data.Compression
	var raw io.Reader
	if spec.IsSegmented() {
		raw = segio.New(raf, spec.UnderlyingSegments)
	} else {
		raw = io.NewSectionReader(raf, spec.UnderlyingContig.Offset, spec.UnderlyingContig.Length)
	}

	decompressed, err := deflate.Wrap(spec.Kind, raw, spec.UncompressedLength)
	if err != nil {
		return nil, err
	}
	buf, err := io.ReadAll(decompressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing chunk: %w", wrapReadErr(err))
	}
	return bytes.NewReader(buf), nil
}

// wrapReadErr classifies an unexpected end of input as truncation while
// leaving other errors (I/O failures, already-wrapped sentinel errors)
// unchanged.
func wrapReadErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %v", coreerr.ErrTruncated, err)
	}
	return err
}
