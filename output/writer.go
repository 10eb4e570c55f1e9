package output

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/berquerant/csv2json/errors"
)

// Config holds configuration for the JSONL sink
type Config struct {
	// Path of the output file, or "-" for stdout.
	Path string
	// Append opens an existing file in append mode instead of truncating.
	Append bool
	// BufferSize is the write buffer size in bytes.
	BufferSize int
}

// DefaultConfig returns default configuration for the JSONL sink
func DefaultConfig() Config {
	return Config{
		Path:       "-",
		Append:     false,
		BufferSize: 64 * 1024,
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"path is required")
	}
	if c.BufferSize <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"buffer_size must be positive")
	}
	return nil
}

// Writer writes one JSON line per row to a file or stdout.
type Writer struct {
	file   *os.File // nil when writing stdout or an injected stream
	buf    *bufio.Writer
	logger *slog.Logger
	rows   int64
	closed bool
}

// New opens the configured path and returns a row writer. A path of "-"
// writes stdout.
func New(cfg Config, logger *slog.Logger) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Path == "-" {
		return NewFromWriter(os.Stdout, cfg, logger), nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(cfg.Path, flags, 0o644)
	if err != nil {
		return nil, errors.WrapFatal(err, "Writer", "New", fmt.Sprintf("open %s", cfg.Path))
	}

	w := NewFromWriter(file, cfg, logger)
	w.file = file
	w.logger.Debug("Opened output", "path", cfg.Path, "append", cfg.Append)
	return w, nil
}

// NewFromWriter wraps an existing stream. The caller keeps ownership of
// wr; Close only releases resources New acquired.
func NewFromWriter(wr io.Writer, cfg Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = DefaultConfig().BufferSize
	}

	return &Writer{
		buf:    bufio.NewWriterSize(wr, size),
		logger: logger,
	}
}

// WriteRow writes one JSON line followed by a newline. It returns the
// number of JSON bytes written, excluding the newline.
func (w *Writer) WriteRow(line []byte) (int, error) {
	if w.closed {
		return 0, errors.WrapFatal(errors.ErrResourceClosed, "Writer", "WriteRow",
			"write after close")
	}

	n, err := w.buf.Write(line)
	if err != nil {
		return n, errors.WrapFatal(err, "Writer", "WriteRow", "write json line")
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return n, errors.WrapFatal(err, "Writer", "WriteRow", "write line terminator")
	}

	w.rows++
	return n, nil
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int64 { return w.rows }

// Flush forces buffered rows out to the destination.
func (w *Writer) Flush() error {
	if w.closed {
		return nil
	}
	if err := w.buf.Flush(); err != nil {
		return errors.WrapFatal(err, "Writer", "Flush", "flush output buffer")
	}
	return nil
}

// Close flushes buffered rows and releases the underlying file, if any.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	if err := w.Flush(); err != nil {
		return err
	}
	w.closed = true

	if w.file == nil {
		return nil
	}
	if err := w.file.Close(); err != nil {
		return errors.WrapTransient(err, "Writer", "Close", "close output file")
	}
	return nil
}
