package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all converter-level metrics
type Metrics struct {
	// Line flow
	LinesRead     prometheus.Counter
	RowsConverted prometheus.Counter
	RowsSkipped   prometheus.Counter

	// Field typing
	ValuesInferred *prometheus.CounterVec

	// Failures
	TokenizeErrors *prometheus.CounterVec

	// Throughput
	ConvertDuration prometheus.Histogram
	BytesWritten    prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all converter metrics
func NewMetrics() *Metrics {
	return &Metrics{
		LinesRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "csv2json",
				Subsystem: "lines",
				Name:      "read_total",
				Help:      "Total number of input lines read",
			},
		),

		RowsConverted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "csv2json",
				Subsystem: "rows",
				Name:      "converted_total",
				Help:      "Total number of rows converted to JSON",
			},
		),

		RowsSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "csv2json",
				Subsystem: "rows",
				Name:      "skipped_total",
				Help:      "Total number of malformed lines skipped",
			},
		),

		ValuesInferred: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "csv2json",
				Subsystem: "values",
				Name:      "inferred_total",
				Help:      "Total number of field values by inferred type",
			},
			[]string{"type"},
		),

		TokenizeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "csv2json",
				Subsystem: "errors",
				Name:      "tokenize_total",
				Help:      "Total number of tokenizer errors by kind",
			},
			[]string{"kind"},
		),

		ConvertDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "csv2json",
				Subsystem: "processing",
				Name:      "line_duration_seconds",
				Help:      "Per-line conversion duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
		),

		BytesWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "csv2json",
				Subsystem: "output",
				Name:      "bytes_written_total",
				Help:      "Total number of JSON bytes written, excluding newlines",
			},
		),
	}
}

// RecordLineRead increments the input line counter
func (c *Metrics) RecordLineRead() {
	c.LinesRead.Inc()
}

// RecordRowConverted increments the converted row counter
func (c *Metrics) RecordRowConverted() {
	c.RowsConverted.Inc()
}

// RecordRowSkipped increments the skipped row counter
func (c *Metrics) RecordRowSkipped() {
	c.RowsSkipped.Inc()
}

// RecordValueInferred increments the per-type value counter
func (c *Metrics) RecordValueInferred(valueType string) {
	c.ValuesInferred.WithLabelValues(valueType).Inc()
}

// RecordTokenizeError increments the tokenizer error counter
func (c *Metrics) RecordTokenizeError(kind string) {
	c.TokenizeErrors.WithLabelValues(kind).Inc()
}

// RecordConvertDuration records one line's conversion time
func (c *Metrics) RecordConvertDuration(duration time.Duration) {
	c.ConvertDuration.Observe(duration.Seconds())
}

// RecordBytesWritten adds to the output byte counter
func (c *Metrics) RecordBytesWritten(n int) {
	c.BytesWritten.Add(float64(n))
}
