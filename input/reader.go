package input

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/berquerant/csv2json/errors"
)

// Config holds configuration for the line source
type Config struct {
	// Path of the input file, or "-" for stdin.
	Path string
	// BufferSize is the maximum line length in bytes.
	BufferSize int
}

// DefaultConfig returns default configuration for the line source
func DefaultConfig() Config {
	return Config{
		Path:       "-",
		BufferSize: 1 << 20,
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

// Reader yields physical lines from a file or stdin.
type Reader struct {
	file    *os.File // nil when reading stdin or an injected stream
	scanner *bufio.Scanner
	logger  *slog.Logger
	lineNum int
	closed  bool
}

// New opens the configured path and returns a line reader. A path of
// "-" reads stdin.
func New(cfg Config, logger *slog.Logger) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Path == "-" {
		return NewFromReader(os.Stdin, cfg, logger), nil
	}

	file, err := os.Open(cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapInvalid(errors.ErrInputNotFound, "Reader", "New",
				fmt.Sprintf("open %s", cfg.Path))
		}
		return nil, errors.WrapFatal(err, "Reader", "New", fmt.Sprintf("open %s", cfg.Path))
	}

	r := NewFromReader(file, cfg, logger)
	r.file = file
	r.logger.Debug("Opened input", "path", cfg.Path, "buffer_size", cfg.BufferSize)
	return r, nil
}

// NewFromReader wraps an existing stream. The caller keeps ownership of
// rd; Close only releases resources New acquired.
func NewFromReader(rd io.Reader, cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}

	// The scanner's limit is the larger of max and the initial buffer
	// capacity, so the initial capacity must not exceed BufferSize.
	initial := 64 * 1024
	if cfg.BufferSize < initial {
		initial = cfg.BufferSize
	}
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, initial), cfg.BufferSize)

	return &Reader{
		scanner: scanner,
		logger:  logger,
	}
}

// Next returns the next physical line, excluding the line terminator.
// ok is false at end of input. The returned slice is valid only until
// the following call to Next.
func (r *Reader) Next() ([]byte, bool, error) {
	if r.closed {
		return nil, false, errors.WrapInvalid(errors.ErrResourceClosed, "Reader", "Next",
			"read after close")
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			if stderrors.Is(err, bufio.ErrTooLong) {
				r.logger.Warn("Line exceeds buffer capacity", "line", r.lineNum+1)
				return nil, false, errors.WrapInvalid(errors.ErrLineTooLong, "Reader", "Next",
					fmt.Sprintf("scan line %d", r.lineNum+1))
			}
			return nil, false, errors.WrapFatal(err, "Reader", "Next",
				fmt.Sprintf("scan line %d", r.lineNum+1))
		}
		return nil, false, nil
	}

	r.lineNum++
	line := r.scanner.Bytes()
	// bufio.Scanner strips \n; normalize CRLF endings too.
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, true, nil
}

// LineNumber returns the 1-based number of the line most recently
// returned by Next.
func (r *Reader) LineNumber() int { return r.lineNum }

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.file == nil {
		return nil
	}
	if err := r.file.Close(); err != nil {
		return errors.WrapTransient(err, "Reader", "Close", "close input file")
	}
	return nil
}
