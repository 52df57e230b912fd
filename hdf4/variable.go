package hdf4

import (
	"context"
	"fmt"
	"io"

	"github.com/scigolib/hdf4/internal/deflate"
	"github.com/scigolib/hdf4/internal/descriptor"
	"github.com/scigolib/hdf4/internal/fill"
	"github.com/scigolib/hdf4/internal/layout"
	"github.com/scigolib/hdf4/internal/section"
	"github.com/scigolib/hdf4/internal/segio"
)

// Variable is a single named array bound to a Reader, as registered via
// [Reader.Define]. Read materializes a requested Section of it.
type Variable struct {
	reader *Reader
	name   string
	desc   *descriptor.StorageDescriptor
}

// Name returns the variable's registered name.
func (v *Variable) Name() string { return v.name }

// Shape returns the variable's full on-disk shape.
func (v *Variable) Shape() []int64 { return v.desc.Shape }

// DataType returns the variable's scalar element type.
func (v *Variable) DataType() descriptor.DataType { return v.desc.DataType }

// Read materializes sec against the variable's storage, dispatching on
// storage kind (contiguous, linked-segmented, chunked) and whether the
// underlying bytes are DEFLATE-compressed. It returns the fully typed
// result as an Array.
func (v *Variable) Read(ctx context.Context, sec Section) (Array, error) {
	select {
	case <-ctx.Done():
		return Array{}, wrapCancel("Read", ctx.Err())
	default:
	}
	if v.desc.DataType == descriptor.STRUCT {
		return Array{}, wrapErr("Read", fmt.Errorf("variable %q is a record type; use Structure.Read: %w", v.name, ErrUnsupported))
	}

	raf, err := v.reader.readerAt()
	if err != nil {
		return Array{}, wrapErr("Read", err)
	}

	internalSec, err := section.Complete(ptr(sec.toInternal()), v.desc.Shape)
	if err != nil {
		return Array{}, wrapErr("Read", err)
	}

	outShape := internalSec.OutputShape()
	outElems := internalSec.NumElements()
	elementSize := int64(v.desc.ElementSize)
	raw := make([]byte, outElems*elementSize)
	if v.desc.HasNoData {
		fill.Into(raw, 0, outElems, int(elementSize), v.desc.FillValue)
		arr, err := buildArray(v.desc.DataType, outShape, raw, outElems)
		if err != nil {
			return Array{}, wrapErr("Read", err)
		}
		return arr, nil
	}
	if v.desc.Storage.Kind == descriptor.StorageChunked {
		// Chunks need not tile the full array; cells with no covering
		// chunk must read back as the fill value, not zero.
		fill.Into(raw, 0, outElems, int(elementSize), v.desc.FillValue)
	}

	if err := v.materialize(ctx, raf, internalSec, elementSize, raw); err != nil {
		return Array{}, wrapErr("Read", err)
	}

	arr, err := buildArray(v.desc.DataType, outShape, raw, outElems)
	if err != nil {
		return Array{}, wrapErr("Read", err)
	}
	return arr, nil
}

func ptr[T any](v T) *T { return &v }

func (v *Variable) materialize(ctx context.Context, raf io.ReaderAt, sec section.Section, elementSize int64, dst []byte) error {
	desc := v.desc
	switch desc.Storage.Kind {
	case descriptor.StorageContiguous:
		if desc.Compression == nil {
			enum := layout.NewRegular(desc.Storage.Start, elementSize, desc.Shape, sec)
			return layout.ExecutePositioned(ctx, dst, elementSize, raf, enum)
		}
		src := io.NewSectionReader(raf, desc.Storage.Start, desc.Storage.Length)
		stream, err := deflate.Wrap(desc.Compression.Kind, src, desc.Compression.UncompressedLength)
		if err != nil {
			return err
		}
		enum := layout.NewRegular(0, elementSize, desc.Shape, sec)
		return layout.ExecuteStreaming(ctx, dst, elementSize, stream, enum)

	case descriptor.StorageLinked:
		if desc.Compression == nil {
			enum := layout.NewSegmented(desc.Storage.Segments, elementSize, desc.Shape, sec)
			return layout.ExecutePositioned(ctx, dst, elementSize, raf, enum)
		}
		var src io.Reader
		if desc.Compression.IsSegmented() {
			src = segio.New(raf, desc.Compression.UnderlyingSegments)
		} else {
			src = io.NewSectionReader(raf, desc.Compression.UnderlyingContig.Offset, desc.Compression.UnderlyingContig.Length)
		}
		stream, err := deflate.Wrap(desc.Compression.Kind, src, desc.Compression.UncompressedLength)
		if err != nil {
			return err
		}
		enum := layout.NewRegular(0, elementSize, desc.Shape, sec)
		return layout.ExecuteStreaming(ctx, dst, elementSize, stream, enum)

	case descriptor.StorageChunked:
		enum := layout.NewTiled(desc.Storage.Chunks, desc.Storage.ChunkShape, elementSize, sec)
		return layout.ExecuteChunked(ctx, dst, elementSize, raf, desc.Storage.Chunks, enum)

	default:
		return fmt.Errorf("hdf4: storage kind %s: %w", desc.Storage.Kind, ErrInternal)
	}
}
