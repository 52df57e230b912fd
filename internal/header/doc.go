// Package header performs the minimal file-level recognition this module
// needs on its own: magic-number detection and a walk of the Data
// Descriptor (DD) block chain that every HDF4 file's tag/ref directory is
// built from.
//
// It deliberately stops at the DD entries themselves. Interpreting what a
// tag means — assembling an SDS's dimension records and data tag into a
// StorageDescriptor, recognizing an HDF4-EOS profile's extra structural
// attributes — is the job of a full header parser external to this
// module; callers with one hand this package's DD walk to it, or skip
// straight to building descriptors by hand via [hdf4.Reader.Define].
package header
