// Package layout implements the layout enumerators (Regular, Segmented,
// Tiled) and the copy engine that together realize a requested hyperslab
// Section against a variable's on-disk storage.
//
// Each enumerator is a restartable-by-call iterator — Next returns one
// CopyDirective at a time — rather than a push-based callback, so the copy
// engine stays a single synchronous loop with no hidden buffering between
// directives. Streams of decompressed bytes are single-pass; enumerators
// honor that by emitting directives in source-ascending order.
package layout
