package hdf4

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/scigolib/hdf4/internal/descriptor"
)

// magic is the four-byte signature every HDF4 file begins with.
var magic = [4]byte{0x0e, 0x03, 0x13, 0x01}

// Message identifies the kind of side-channel information a SendMessage
// call carries, distinct from the variable-data read path.
type Message int

const (
	// MsgHeader asks the Reader to log a summary of its known variables
	// at their current registration state.
	MsgHeader Message = iota
	// MsgCharset reports (or, with a string payload, updates) the
	// charset name recorded on the Reader (see WithCharset).
	MsgCharset
)

// Reader is the core materialization engine bound to one open file. An
// internal mutex guards the Reader's own state (its io.ReaderAt handle,
// charset, closed flag and registered variables), so its methods may be
// called from several goroutines. The mutex is not held while a Read
// pulls bytes through the io.ReaderAt: reads that run at the same time
// call ReadAt concurrently, and serializing them is left to the caller.
type Reader struct {
	mu      sync.Mutex
	raf     io.ReaderAt
	logger  *slog.Logger
	charset string
	closed  bool

	vars map[string]*Variable
}

// IsValidFile reports whether the first four bytes read from r are the
// HDF4 magic number. It does not otherwise inspect the file.
func IsValidFile(r io.ReaderAt) (bool, error) {
	var buf [4]byte
	n, err := r.ReadAt(buf[:], 0)
	if err != nil && err != io.EOF {
		return false, wrapErr("IsValidFile", err)
	}
	if n < 4 {
		return false, nil
	}
	return buf == magic, nil
}

// Open binds a Reader to raf without validating its contents; call
// IsValidFile first if that check matters to the caller.
func Open(raf io.ReaderAt, opts ...FileOption) *Reader {
	o := defaultReaderOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Reader{
		raf:     raf,
		logger:  o.logger,
		charset: o.charset,
		vars:    make(map[string]*Variable),
	}
}

// FileTypeID returns a short human-readable identifier for the file kind
// a Reader was opened against. This engine does not distinguish HDF4-EOS
// profiles from plain HDF4 on its own (that distinction lives in the
// external header parser); it always reports the base format.
func (r *Reader) FileTypeID() string {
	return "HDF4"
}

// Reacquire swaps the underlying io.ReaderAt, e.g. after a caller
// reopens a file handle that was closed and reopened at the same path.
// Previously defined Variables and Structures remain valid; they read
// through the new raf on their next operation.
func (r *Reader) Reacquire(raf io.ReaderAt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raf = raf
	r.closed = false
}

// Close marks the Reader closed. Subsequent reads return ErrClosed.
// Close does not close the underlying io.ReaderAt, since the Reader
// never owned it.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Define registers a variable's storage descriptor under name, returning
// a Variable (or, when desc.DataType is STRUCT, use DefineStructure
// instead) bound to this Reader for subsequent Read calls. Define is how
// a header parser — or a test, or a caller with out-of-band knowledge of
// a file's layout — hands this engine the descriptors it materializes
// data against.
func (r *Reader) Define(name string, desc *descriptor.StorageDescriptor) *Variable {
	v := &Variable{reader: r, name: name, desc: desc}
	r.mu.Lock()
	r.vars[name] = v
	r.mu.Unlock()
	return v
}

// DefineStructure registers a STRUCT-typed descriptor under name and
// returns a Structure bound to this Reader.
func (r *Reader) DefineStructure(name string, desc *descriptor.StorageDescriptor) *Structure {
	return &Structure{reader: r, name: name, desc: desc}
}

// Variable looks up a previously Define-d variable by name.
func (r *Reader) Variable(name string) (*Variable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vars[name]
	if !ok {
		return nil, wrapErr("Variable", fmt.Errorf("%q: %w", name, ErrNotFound))
	}
	return v, nil
}

// SendMessage delivers an out-of-band control message to the Reader.
// For MsgHeader, payload is ignored and a summary of registered
// variables is logged. For MsgCharset, a non-empty string payload
// updates the Reader's charset; any other payload (including nil)
// leaves it unchanged and returns the current value.
func (r *Reader) SendMessage(ctx context.Context, msg Message, payload interface{}) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, wrapCancel("SendMessage", ctx.Err())
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg {
	case MsgHeader:
		r.logger.Info("reader state", "variables", len(r.vars), "file_type", r.FileTypeID())
		return len(r.vars), nil
	case MsgCharset:
		if s, ok := payload.(string); ok && s != "" {
			r.charset = s
		}
		return r.charset, nil
	default:
		return nil, wrapErr("SendMessage", fmt.Errorf("message kind %d: %w", msg, ErrUnsupported))
	}
}

func (r *Reader) readerAt() (io.ReaderAt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	return r.raf, nil
}
