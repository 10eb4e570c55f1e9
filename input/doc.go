// Package input provides the line source for the converter.
//
// The Reader hands out one physical line at a time, excluding the
// trailing newline, with CRLF endings normalized. Quoted fields spanning
// physical lines are not supported anywhere in the converter, so the
// reader never rejoins lines; the tokenizer sees exactly what the reader
// yields.
package input
