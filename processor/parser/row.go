package parser

import (
	"encoding/json"

	"github.com/berquerant/csv2json/errors"
)

// Row accumulates one line's typed values in order and serializes them
// as one JSON line. Row length is independent of header length; the
// mismatch is resolved positionally at Dump time and is never an error.
type Row struct {
	header *Header
	values []Value
}

// NewRow returns a row builder. With a nil header Dump emits a JSON
// array; with a header it emits a JSON object in header order.
func NewRow(header *Header) *Row {
	return &Row{header: header}
}

// Append adds one value to the current row, in order.
func (r *Row) Append(v Value) {
	r.values = append(r.values, v)
}

// Len returns the number of accumulated values.
func (r *Row) Len() int { return len(r.values) }

// Dump serializes the row as one JSON line, excluding the trailing
// newline.
//
// Without a header the result is a JSON array, one element per
// accumulated value. With a header the result is a JSON object walked in
// header order: a row shorter than the header pads the missing columns
// with null, and row entries at index >= header length are silently
// dropped. The object is assembled by hand rather than through a Go map
// so that key order and duplicate column names survive encoding.
func (r *Row) Dump() ([]byte, error) {
	if r.header == nil {
		return r.dumpArray()
	}
	return r.dumpObject()
}

func (r *Row) dumpArray() ([]byte, error) {
	buf := make([]byte, 0, 2+16*len(r.values))
	buf = append(buf, '[')
	for i, v := range r.values {
		if i > 0 {
			buf = append(buf, ',')
		}
		var err error
		buf, err = v.appendJSON(buf)
		if err != nil {
			return nil, errors.Wrap(err, "Row", "Dump", "encode array element")
		}
	}
	return append(buf, ']'), nil
}

func (r *Row) dumpObject() ([]byte, error) {
	buf := make([]byte, 0, 2+32*r.header.Len())
	buf = append(buf, '{')
	for i := 0; i < r.header.Len(); i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(r.header.Name(i))
		if err != nil {
			return nil, errors.Wrap(err, "Row", "Dump", "encode object key")
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		if i < len(r.values) {
			buf, err = r.values[i].appendJSON(buf)
			if err != nil {
				return nil, errors.Wrap(err, "Row", "Dump", "encode object value")
			}
			continue
		}
		buf = append(buf, "null"...)
	}
	return append(buf, '}'), nil
}

// Reset releases the current row's values and empties it for the next
// input line. The header is untouched.
func (r *Row) Reset() {
	clear(r.values) // drop references to owned string buffers
	r.values = r.values[:0]
}
