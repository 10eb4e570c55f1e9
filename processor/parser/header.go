package parser

import (
	"fmt"

	"github.com/berquerant/csv2json/errors"
)

// Header is an ordered collection of column names used to key JSON
// objects. Insertion order is column order. Uniqueness of names is not
// enforced. A Header is built once, before row processing starts, and is
// read-only afterwards, so any number of rows may share it.
type Header struct {
	names []string
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{}
}

// Append registers one column name. Only String values are accepted;
// anything else fails with ErrAppendFailed and leaves the header
// unchanged.
func (h *Header) Append(v Value) error {
	s, ok := v.Text()
	if !ok {
		return errors.WrapInvalid(errors.ErrAppendFailed, "Header", "Append",
			fmt.Sprintf("want a string value, got %s", v.Kind()))
	}
	h.names = append(h.names, s)
	return nil
}

// Len returns the number of columns.
func (h *Header) Len() int { return len(h.names) }

// Name returns the column name at index i.
func (h *Header) Name(i int) string { return h.names[i] }

// Names returns a copy of the column names in order.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// BuildHeader tokenizes the designated header line and registers every
// field as a column name through the force-string inference path.
func BuildHeader(line []byte) (*Header, error) {
	h := NewHeader()
	tok := NewTokenizer(line)
	for {
		f, ok, err := tok.Next()
		if err != nil {
			return nil, errors.Wrap(err, "Header", "BuildHeader", "tokenize header line")
		}
		if !ok {
			return h, nil
		}
		if err := h.Append(InferString(f)); err != nil {
			return nil, err
		}
	}
}
