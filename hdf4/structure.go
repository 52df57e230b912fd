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

// Record is one element of a Structure read: a map from member name to
// that member's decoded Array. Each Array carries the member descriptor's
// own Shape, since a record's members are scalars or fixed-size
// sub-arrays rather than independently sliceable dimensions.
type Record map[string]Array

// Structure is a record (STRUCT-typed) variable bound to a Reader, whose
// elements carry named, differently typed members at fixed byte offsets
// — the HDF4 Vdata model. Supported over contiguous and linked-segmented
// storage, compressed or not; chunked record storage is not a
// combination this format produces and is rejected as Unsupported.
type Structure struct {
	reader *Reader
	name   string
	desc   *descriptor.StorageDescriptor
}

// Name returns the structure's registered name.
func (s *Structure) Name() string { return s.name }

// Shape returns the structure's record-count shape (rank 1: number of
// records).
func (s *Structure) Shape() []int64 { return s.desc.Shape }

// Read materializes sec (over the record dimension) and decodes every
// selected record's members.
func (s *Structure) Read(ctx context.Context, sec Section) ([]Record, error) {
	select {
	case <-ctx.Done():
		return nil, wrapCancel("Read", ctx.Err())
	default:
	}
	if s.desc.Storage.Kind == descriptor.StorageChunked {
		return nil, wrapErr("Read", fmt.Errorf("structure %q: chunked record storage: %w", s.name, ErrUnsupported))
	}

	raf, err := s.reader.readerAt()
	if err != nil {
		return nil, wrapErr("Read", err)
	}

	internalSec, err := section.Complete(ptr(sec.toInternal()), s.desc.Shape)
	if err != nil {
		return nil, wrapErr("Read", err)
	}

	elementSize := int64(s.desc.ElementSize)
	n := internalSec.NumElements()
	raw := make([]byte, n*elementSize)
	if s.desc.HasNoData {
		fill.Into(raw, 0, n, int(elementSize), s.desc.FillValue)
		return s.decodeRecords(raw, elementSize, n)
	}

	if err := s.materialize(ctx, raf, internalSec, elementSize, raw); err != nil {
		return nil, wrapErr("Read", err)
	}
	return s.decodeRecords(raw, elementSize, n)
}

// decodeRecords slices raw into n fixed-width records and decodes each
// member independently.
func (s *Structure) decodeRecords(raw []byte, elementSize, n int64) ([]Record, error) {
	records := make([]Record, n)
	for i := int64(0); i < n; i++ {
		rec := make(Record, len(s.desc.Members))
		recBytes := raw[i*elementSize : (i+1)*elementSize]
		for _, m := range s.desc.Members {
			memberElems := m.Descriptor.NumElements()
			memberBytes := recBytes[m.Offset : int64(m.Offset)+int64(m.Descriptor.ElementSize)*memberElems]
			arr, err := buildArray(m.Descriptor.DataType, m.Descriptor.Shape, memberBytes, memberElems)
			if err != nil {
				return nil, wrapErr("Read", fmt.Errorf("member %q: %w", m.Name, err))
			}
			rec[m.Name] = arr
		}
		records[i] = rec
	}
	return records, nil
}

func (s *Structure) materialize(ctx context.Context, raf io.ReaderAt, sec section.Section, elementSize int64, dst []byte) error {
	desc := s.desc
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

	default:
		return fmt.Errorf("hdf4: storage kind %s: %w", desc.Storage.Kind, ErrInternal)
	}
}
