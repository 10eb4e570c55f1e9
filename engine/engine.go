package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/berquerant/csv2json/errors"
	"github.com/berquerant/csv2json/metric"
	"github.com/berquerant/csv2json/processor/parser"
)

// Policy decides what happens to a malformed line.
type Policy int

const (
	// PolicySkip drops the line with a diagnostic and continues.
	PolicySkip Policy = iota
	// PolicyAbort stops the whole run at the first malformed line.
	PolicyAbort
)

// String returns the string representation of Policy
func (p Policy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return PolicySkip, errors.WrapInvalid(errors.ErrInvalidConfig, "Policy", "ParsePolicy",
			fmt.Sprintf("unknown policy %q", s))
	}
}

// LineSource hands out one physical line at a time.
type LineSource interface {
	Next() ([]byte, bool, error)
}

// RowSink accepts one serialized JSON line per row.
type RowSink interface {
	WriteRow(line []byte) (int, error)
}

// Options configures an Engine.
type Options struct {
	// Header consumes the first line as column names.
	Header bool
	// Policy is the malformed-line policy.
	Policy Policy
	// Metrics receives conversion counters; nil allocates unregistered
	// metrics so the engine can always record unconditionally.
	Metrics *metric.Metrics
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Stats summarizes one run. LinesRead includes the header line.
type Stats struct {
	LinesRead     int64
	RowsConverted int64
	RowsSkipped   int64
}

// Engine converts lines from a source into JSON rows on a sink.
type Engine struct {
	source  LineSource
	sink    RowSink
	header  bool
	policy  Policy
	metrics *metric.Metrics
	logger  *slog.Logger
	runID   string
}

// New creates an engine over a line source and a row sink.
func New(source LineSource, sink RowSink, opts Options) *Engine {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = metric.NewMetrics()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()

	return &Engine{
		source:  source,
		sink:    sink,
		header:  opts.Header,
		policy:  opts.Policy,
		metrics: metrics,
		logger:  logger.With("run_id", runID),
		runID:   runID,
	}
}

// RunID returns the unique identifier of this engine's run.
func (e *Engine) RunID() string { return e.runID }

// Run converts the whole source. It returns the run statistics together
// with the first error that stopped the run, if any. With PolicySkip a
// malformed line is counted, logged at Warn and dropped; with
// PolicyAbort it stops the run with the line number attached. A header
// line that fails to tokenize always aborts: there is no usable column
// set to continue with.
func (e *Engine) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	e.logger.Info("Starting conversion",
		"header", e.header,
		"on_error", e.policy.String())

	lineNo := 0

	var header *parser.Header
	if e.header {
		line, ok, err := e.source.Next()
		if err != nil {
			return stats, errors.Wrap(err, "Engine", "Run", "read header line")
		}
		if !ok {
			e.logger.Info("Empty input, nothing to convert")
			return stats, nil
		}
		lineNo++
		stats.LinesRead++
		e.metrics.RecordLineRead()

		header, err = parser.BuildHeader(line)
		if err != nil {
			e.metrics.RecordTokenizeError(errorKind(err))
			return stats, fmt.Errorf("header line: %w", err)
		}
		e.logger.Debug("Header constructed", "columns", header.Len())
	}

	row := parser.NewRow(header)
	for {
		if err := ctx.Err(); err != nil {
			return stats, errors.WrapTransient(err, "Engine", "Run", "conversion interrupted")
		}

		line, ok, err := e.source.Next()
		if err != nil {
			return stats, errors.Wrap(err, "Engine", "Run", "read line")
		}
		if !ok {
			break
		}
		lineNo++
		stats.LinesRead++
		e.metrics.RecordLineRead()
		start := time.Now()

		if err := e.buildRow(line, row); err != nil {
			e.metrics.RecordTokenizeError(errorKind(err))
			row.Reset()
			if e.policy == PolicyAbort {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			stats.RowsSkipped++
			e.metrics.RecordRowSkipped()
			e.logger.Warn("Skipping malformed line", "line", lineNo, "error", err)
			continue
		}

		out, err := row.Dump()
		row.Reset()
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", lineNo, err)
		}

		written, err := e.sink.WriteRow(out)
		if err != nil {
			return stats, errors.Wrap(err, "Engine", "Run", "write row")
		}

		stats.RowsConverted++
		e.metrics.RecordRowConverted()
		e.metrics.RecordBytesWritten(written)
		e.metrics.RecordConvertDuration(time.Since(start))
	}

	e.logger.Info("Conversion complete",
		"lines_read", stats.LinesRead,
		"rows_converted", stats.RowsConverted,
		"rows_skipped", stats.RowsSkipped)
	return stats, nil
}

// buildRow tokenizes one line and fills the row with inferred values.
// On a tokenizer error the row holds the fields yielded so far; the
// caller resets it.
func (e *Engine) buildRow(line []byte, row *parser.Row) error {
	tok := parser.NewTokenizer(line)
	for {
		f, ok, err := tok.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		v := parser.Infer(f)
		e.metrics.RecordValueInferred(v.Kind().String())
		row.Append(v)
	}
}

// errorKind maps tokenizer errors onto metric label values.
func errorKind(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrQuoteInTheMiddle):
		return "quote_in_the_middle"
	case stderrors.Is(err, errors.ErrQuoteUnbalanced):
		return "quote_unbalanced"
	case stderrors.Is(err, errors.ErrAppendFailed):
		return "append_failed"
	default:
		return "other"
	}
}
