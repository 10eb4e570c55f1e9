// Package metric provides prometheus instrumentation for the converter.
//
// Metrics holds the converter-level counters and histograms with Record*
// helpers, MetricsRegistry owns a dedicated prometheus registry seeded
// with the core metrics and Go runtime collectors, and Server exposes
// the registry over HTTP at /metrics when a metrics port is configured.
//
// The converter is a one-shot process, so the HTTP server is optional
// and mostly useful for long runs over large inputs.
package metric
