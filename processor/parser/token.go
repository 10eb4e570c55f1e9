package parser

import (
	"fmt"

	"github.com/berquerant/csv2json/errors"
)

// Field is a borrowed view into the line buffer spanning one CSV field's
// raw bytes. The outer quote pair is already stripped; doubled quotes
// inside the content are still present. A Field is valid only while the
// backing line buffer is valid.
type Field struct {
	raw    []byte
	quoted bool
}

// Raw returns the field's raw bytes, excluding the field-separating
// comma and the line's terminating boundary.
func (f Field) Raw() []byte { return f.raw }

// Quoted reports whether the field was wrapped in quotes on the line.
func (f Field) Quoted() bool { return f.quoted }

type tokenizerState int

const (
	stateScanning tokenizerState = iota
	stateDone
	stateFailed
)

// Tokenizer splits one line of raw bytes into a sequence of field spans,
// honoring double-quote quoting and doubled-quote escaping. It performs
// no allocation; it only computes slice boundaries over the caller-owned
// line buffer.
//
// Tokenizer is a pull-based iterator with a terminal error state: once
// Next has reported an error, every subsequent call reports end of input
// and the error is not re-delivered.
type Tokenizer struct {
	line  []byte
	pos   int
	state tokenizerState
}

// NewTokenizer returns a tokenizer over one physical line, excluding any
// trailing newline. The tokenizer must not be retained past the lifetime
// of line.
func NewTokenizer(line []byte) *Tokenizer {
	return &Tokenizer{line: line}
}

// Next returns the next field of the line. ok is false when the
// tokenizer is exhausted, either because the line is fully consumed or
// because a previous call reported an error.
//
// An empty line yields exactly one empty field. A line ending in a comma
// yields one additional empty field before exhaustion.
func (t *Tokenizer) Next() (field Field, ok bool, err error) {
	if t.state != stateScanning {
		return Field{}, false, nil
	}
	// pos one past the line end marks exhaustion; pos equal to the line
	// end is a pending empty field (empty line, or trailing comma).
	if t.pos > len(t.line) {
		t.state = stateDone
		return Field{}, false, nil
	}
	if t.pos < len(t.line) && t.line[t.pos] == '"' {
		return t.nextQuoted()
	}
	return t.nextBare()
}

func (t *Tokenizer) nextBare() (Field, bool, error) {
	start := t.pos
	for i := start; i < len(t.line); i++ {
		switch t.line[i] {
		case ',':
			t.pos = i + 1
			return Field{raw: t.line[start:i]}, true, nil
		case '"':
			t.state = stateFailed
			return Field{}, false, errors.WrapInvalid(
				errors.ErrQuoteInTheMiddle, "Tokenizer", "Next",
				fmt.Sprintf("scan unquoted field at byte %d", i))
		}
	}
	t.pos = len(t.line) + 1
	return Field{raw: t.line[start:]}, true, nil
}

func (t *Tokenizer) nextQuoted() (Field, bool, error) {
	start := t.pos + 1 // content begins after the opening quote
	i := start
	for i < len(t.line) {
		if t.line[i] != '"' {
			i++
			continue
		}
		if i+1 < len(t.line) && t.line[i+1] == '"' {
			// escaped quote, still inside the field
			i += 2
			continue
		}
		if i+1 == len(t.line) {
			t.pos = len(t.line) + 1
			return Field{raw: t.line[start:i], quoted: true}, true, nil
		}
		if t.line[i+1] == ',' {
			t.pos = i + 2
			return Field{raw: t.line[start:i], quoted: true}, true, nil
		}
		t.state = stateFailed
		return Field{}, false, errors.WrapInvalid(
			errors.ErrQuoteUnbalanced, "Tokenizer", "Next",
			fmt.Sprintf("closing quote followed by %q at byte %d", t.line[i+1], i+1))
	}
	t.state = stateFailed
	return Field{}, false, errors.WrapInvalid(
		errors.ErrQuoteUnbalanced, "Tokenizer", "Next",
		"end of line inside a quoted field")
}
