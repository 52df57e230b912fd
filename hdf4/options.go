package hdf4

import "log/slog"

// FileOption configures a Reader at construction time.
type FileOption func(*readerOptions)

type readerOptions struct {
	logger  *slog.Logger
	charset string
}

func defaultReaderOptions() *readerOptions {
	return &readerOptions{
		logger:  slog.Default(),
		charset: "ascii",
	}
}

// WithLogger sets the logger a Reader uses for diagnostic output. Replaces
// the process-wide debug toggle some HDF4 readers use with a reader-scoped
// *slog.Logger, so concurrent Readers in the same process can each have
// independent logging configuration.
func WithLogger(l *slog.Logger) FileOption {
	return func(o *readerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCharset records the name of the character set CHAR-typed variables
// are declared to use. Defaults to "ascii"; HDF4-EOS files commonly also
// use "utf-8". The name is kept on the Reader and reported by
// SendMessage(MsgCharset); Array.String does not consult it and returns
// the CHAR bytes as a Go string unchanged.
func WithCharset(charset string) FileOption {
	return func(o *readerOptions) {
		if charset != "" {
			o.charset = charset
		}
	}
}
