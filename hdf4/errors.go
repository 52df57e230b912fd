// Package hdf4 provides a pure Go data-materialization engine for HDF4 and
// HDF4-EOS scientific files: given a variable's storage layout and a
// requested hyperslab, it produces the typed array of values that layout
// describes, handling contiguous, linked-block, and chunked storage, with
// optional DEFLATE decompression and fill-value substitution.
//
// Locating and interpreting a file's internal structures (the Data
// Descriptor chain, Vdata/SDS tag semantics) is the job of a header
// parser; this package is handed the result as a StorageDescriptor,
// either by such a parser or directly by a caller via [Reader.Define].
package hdf4

import (
	"errors"
	"fmt"

	"github.com/scigolib/hdf4/internal/coreerr"
)

// Kind classifies an Error into one of the taxonomy buckets a caller can
// branch on without inspecting wrapped error chains.
type Kind uint8

const (
	// KindInvalidSection means the requested Section was malformed or out
	// of bounds for the variable's shape.
	KindInvalidSection Kind = iota
	// KindTruncated means the file (or a decompressed stream) ended
	// before all requested bytes could be produced.
	KindTruncated
	// KindUnsupported means the descriptor names a storage or
	// compression variant this engine does not implement.
	KindUnsupported
	// KindIO means the underlying io.ReaderAt returned a non-EOF error.
	// It is also the bucket for any error that matches none of the other
	// sentinels, such as ErrNotFound and ErrClosed.
	KindIO
	// KindCancelled means the caller's context was cancelled mid-read.
	KindCancelled
	// KindInternal means an invariant the engine relies on was violated;
	// it signals a bug rather than a malformed file.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidSection:
		return "invalid_section"
	case KindTruncated:
		return "truncated"
	case KindUnsupported:
		return "unsupported"
	case KindIO:
		return "io"
	case KindCancelled:
		return "cancelled"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the exported Reader, Variable and
// Structure operations and by IsValidFile (Array.String returns plain
// errors). Kind reports which taxonomy bucket the failure falls into;
// Err is the underlying cause (often itself wrapping one of the package
// sentinels below via %w, so errors.Is still works through an Error).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("hdf4: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("hdf4: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Package-level sentinels, mirroring the taxonomy in internal/coreerr so
// callers can errors.Is against either this package or, for library code
// composing on top of internal packages directly, coreerr.
var (
	ErrInvalidSection = coreerr.ErrInvalidSection
	ErrTruncated      = coreerr.ErrTruncated
	ErrUnsupported    = coreerr.ErrUnsupported
	ErrCancelled      = coreerr.ErrCancelled
	ErrInternal       = coreerr.ErrInternal
	ErrNotFound       = errors.New("variable not found")
	ErrClosed         = errors.New("reader is closed")
)

// classify maps a raw error to its Kind by walking the sentinel chain.
func classify(err error) Kind {
	switch {
	case errors.Is(err, coreerr.ErrInvalidSection):
		return KindInvalidSection
	case errors.Is(err, coreerr.ErrTruncated):
		return KindTruncated
	case errors.Is(err, coreerr.ErrUnsupported):
		return KindUnsupported
	case errors.Is(err, coreerr.ErrCancelled):
		return KindCancelled
	case errors.Is(err, coreerr.ErrInternal):
		return KindInternal
	default:
		return KindIO
	}
}

// wrapErr builds the boundary Error for op, or returns nil if err is nil.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

// wrapCancel builds the boundary Error for a context error observed at op,
// folding it into the Cancelled taxonomy bucket regardless of whether it
// was context.Canceled or context.DeadlineExceeded.
func wrapCancel(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindCancelled, Op: op, Err: fmt.Errorf("%v: %w", err, coreerr.ErrCancelled)}
}
