// Package dtype converts raw big-endian element bytes, laid out according
// to a descriptor.StorageDescriptor, into host-endian Go values.
//
// HDF4 stores every scalar type big-endian regardless of host
// architecture, so unlike a little-endian source there is no direct-copy
// fast path available here: every multi-byte element is decoded
// individually through encoding/binary.BigEndian. Single-byte types (I8,
// U8, CHAR) are copied as they are.
package dtype
