// Package coreerr holds the sentinel errors shared by every internal
// package in the data-materialization pipeline. The public hdf4 package
// classifies errors into its Kind taxonomy by testing against these with
// errors.Is; internal packages only ever need to wrap one of them.
package coreerr

import "errors"

var (
	// ErrInvalidSection: a requested hyperslab violates a descriptor
	// invariant (out-of-bounds range, rank mismatch, non-positive stride).
	ErrInvalidSection = errors.New("invalid section")

	// ErrTruncated: a byte source ended before the enumerator's demand
	// was satisfied.
	ErrTruncated = errors.New("truncated data stream")

	// ErrUnsupported: compression kind outside {NONE, DEFLATE}, or a
	// chunked structure variable.
	ErrUnsupported = errors.New("unsupported")

	// ErrCancelled: a caller-supplied cancellation token tripped.
	ErrCancelled = errors.New("cancelled")

	// ErrInternal: an invariant was violated on a supposedly well-formed
	// file (e.g. an unknown storage tag). Never expected in practice.
	ErrInternal = errors.New("internal error")
)
