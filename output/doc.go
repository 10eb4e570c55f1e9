// Package output provides the JSONL sink for the converter.
//
// The Writer appends exactly one newline per JSON line; the engine hands
// it fully serialized rows. Writes are buffered, so callers must Flush
// or Close before relying on the destination's contents.
package output
