// Package errors provides standardized error handling patterns for csv2json.
// It includes error classification, standard error variables, and helper
// functions for consistent error wrapping and classification across the
// converter.
//
// Errors are classified into three classes:
//
//   - transient: temporary failures where a retry could succeed
//   - invalid: malformed input or configuration; retrying is pointless
//   - fatal: unrecoverable failures that must stop the run
//
// Tokenizer and header construction failures are always invalid: a
// malformed quote does not become well-formed on a second read. The
// engine's skip-vs-abort policy keys off this classification.
package errors
