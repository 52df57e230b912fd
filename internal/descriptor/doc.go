// Package descriptor defines the data model the header parser hands to the
// core: per-variable storage layout, compression, and chunk metadata.
//
// Everything here is read-only to the rest of the module. Descriptors are
// built once (by a header parser, or directly by callers/tests via
// [hdf4.Reader.Define]) and never mutated afterward.
package descriptor
