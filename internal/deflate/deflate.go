// Package deflate wraps a byte source with streaming DEFLATE inflation, or
// passes it through unchanged, per the variable's CompressionSpec.
//
// Decompression itself is delegated to klauspost/compress/zlib (a
// drop-in, faster replacement for compress/zlib already pulled in by
// dsnet-compress and the rest of the retrieved pack for DEFLATE-family
// codecs) rather than the standard library's compress/zlib.
package deflate

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/scigolib/hdf4/internal/coreerr"
	"github.com/scigolib/hdf4/internal/descriptor"
)

// Wrap returns a reader producing the uncompressed byte stream described by
// kind. uncompressedLength is the expected number of decoded bytes; a
// DEFLATE stream that ends before producing that many bytes surfaces
// coreerr.ErrTruncated from Read. Any kind other than CompressionNone or
// CompressionDeflate returns coreerr.ErrUnsupported immediately.
func Wrap(kind descriptor.CompressionKind, src io.Reader, uncompressedLength int64) (io.Reader, error) {
	switch kind {
	case descriptor.CompressionNone:
		return src, nil
	case descriptor.CompressionDeflate:
		zr, err := zlib.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("opening deflate stream: %w", err)
		}
		return &truncationChecker{z: zr, remaining: uncompressedLength}, nil
	default:
		return nil, fmt.Errorf("compression kind %d: %w", kind, coreerr.ErrUnsupported)
	}
}

// truncationChecker tracks how many decoded bytes are still expected and
// turns an early EOF into coreerr.ErrTruncated.
type truncationChecker struct {
	z         io.ReadCloser
	remaining int64
}

func (t *truncationChecker) Read(p []byte) (int, error) {
	if t.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > t.remaining {
		p = p[:t.remaining]
	}
	n, err := t.z.Read(p)
	t.remaining -= int64(n)
	if err == io.EOF && t.remaining > 0 {
		return n, fmt.Errorf("stream ended with %d bytes still expected: %w", t.remaining, coreerr.ErrTruncated)
	}
	return n, err
}
