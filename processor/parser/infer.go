package parser

import "strconv"

// Canonicalize collapses every doubled quote in raw into a single quote
// and returns the result as an owned string. No other byte is altered.
// For well-formed tokenizer output a lone quote cannot appear here.
func Canonicalize(raw []byte) string {
	b := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		b = append(b, c)
		if c == '"' && i+1 < len(raw) && raw[i+1] == '"' {
			i++ // skip the escape partner
		}
	}
	return string(b)
}

// Infer classifies a field's canonicalized content with a fixed
// precedence: empty → Null, then integer, then float, then String.
// Numeric parsing is attempted only when the content passes the
// maybe-numeric gate; a failed numeric parse is never an error and
// degrades to the String fallback.
func Infer(f Field) Value {
	s := Canonicalize(f.Raw())
	if len(s) == 0 {
		return NewNull()
	}
	if !maybeNumeric(s) {
		return NewString(s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInteger(i)
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(fl)
	}
	return NewString(s)
}

// InferString always returns a String value from the canonicalized
// content, bypassing numeric inference. Header construction uses this
// path so names such as "123" remain textual.
func InferString(f Field) Value {
	return NewString(Canonicalize(f.Raw()))
}

// maybeNumeric reports whether s consists solely of ASCII digits and
// '.'. The gate over-approximates on purpose: content like ".." or
// "1.2.3" passes, fails both numeric parses, and falls back to String.
// Do not tighten it.
func maybeNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
