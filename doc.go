// Package csv2json converts delimited text rows into JSON values, one
// input line at a time.
//
// # Architecture
//
// The converter is a synchronous, single-process pipeline:
//
//	┌─────────────────────────────────────┐
//	│            Engine                   │  header construction,
//	│   (per-line loop, error policy)     │  skip-vs-abort looping
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│     input → parser → output         │  line scanning, tokenizing,
//	│                                     │  type inference, JSON emit
//	└─────────────────────────────────────┘
//
// The core lives in processor/parser: a quote-aware CSV field tokenizer
// with strict terminal error signaling, a per-field type inference layer
// (Null / Integer / Float / String), and a row builder that serializes
// typed fields as a JSON array or, when a header is configured, a JSON
// object keyed by column name.
//
// Everything around the core is thin plumbing: input scans physical
// lines, output writes JSON lines, config/cmd handle configuration and
// flags, metric exposes prometheus instrumentation, and engine decides
// whether a malformed line skips or aborts the run.
//
// # Dialect
//
// The delimiter is exactly ','. The quoting character is exactly '"'.
// The only escape mechanism is a doubled quote inside a quoted field
// ("" -> "). Quoted fields do not span physical lines.
package csv2json
