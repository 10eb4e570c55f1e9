package parser

import (
	"encoding/json"
	"strconv"

	"github.com/berquerant/csv2json/errors"
)

// Kind identifies the active variant of a Value.
type Kind int

const (
	// KindNull is an absent value, from an empty field.
	KindNull Kind = iota
	// KindString is textual content, the inference fallback.
	KindString
	// KindInteger is a signed 64-bit integer.
	KindInteger
	// KindFloat is a 64-bit floating-point number.
	KindFloat
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a tagged union with exactly one active variant. Only the
// String variant owns a buffer, produced by canonicalization; the other
// variants carry inline scalars and own nothing.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
}

// NewNull returns the Null value.
func NewNull() Value { return Value{kind: KindNull} }

// NewString returns a String value owning s.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewInteger returns an Integer value.
func NewInteger(i int64) Value { return Value{kind: KindInteger, i: i} }

// NewFloat returns a Float value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string content; ok is false unless the String
// variant is active.
func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

// Integer returns the integer content; ok is false unless the Integer
// variant is active.
func (v Value) Integer() (int64, bool) { return v.i, v.kind == KindInteger }

// Float returns the float content; ok is false unless the Float variant
// is active.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

// appendJSON appends the JSON encoding of the active variant to dst.
// Strings and floats go through encoding/json so their rendering matches
// the standard encoder exactly.
func (v Value) appendJSON(dst []byte) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Value", "appendJSON", "encode string")
		}
		return append(dst, b...), nil
	case KindInteger:
		return strconv.AppendInt(dst, v.i, 10), nil
	case KindFloat:
		b, err := json.Marshal(v.f)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Value", "appendJSON", "encode float")
		}
		return append(dst, b...), nil
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Value", "appendJSON",
			"encode unknown variant")
	}
}
