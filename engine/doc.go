// Package engine drives the per-line conversion loop.
//
// The engine wires the line source, the parser core, and the row sink
// together: it optionally consumes the first line as the header, then
// tokenizes, infers, assembles, and writes one JSON line per input
// line. A malformed line either aborts the run or is skipped with a
// diagnostic, depending on the configured policy; the parser core
// itself never makes that call.
//
// The loop is synchronous and single-threaded. Cancellation is observed
// between lines, never inside the parsing of one line.
package engine
