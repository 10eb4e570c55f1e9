// Package parser implements the core of csv2json: a quote-aware CSV
// field tokenizer, per-field type inference, and row assembly into JSON
// lines.
//
// # Overview
//
// One physical line of input flows through three stages:
//
//	raw line → Tokenizer → raw field spans
//	         → Canonicalize + Infer → typed values
//	         → Row → one JSON line
//
// The Tokenizer computes slice boundaries over the caller-owned line
// buffer and never allocates. Canonicalize produces the only transient
// allocation per field, the owned string with doubled quotes collapsed.
// Infer decides Null / Integer / Float / String. Row accumulates values
// and serializes them as a JSON array or, when a Header is configured,
// a JSON object keyed by column name.
//
// # Tokenizer
//
// The tokenizer is a pull-based, stateful iterator:
//
//	tok := parser.NewTokenizer([]byte(`"aaa,10,c",X`))
//	for {
//	    field, ok, err := tok.Next()
//	    if err != nil {
//	        // errors.Is(err, errors.ErrQuoteInTheMiddle) or
//	        // errors.Is(err, errors.ErrQuoteUnbalanced)
//	        break
//	    }
//	    if !ok {
//	        break // end of input
//	    }
//	    // field.Raw() is valid while the line buffer is valid
//	}
//
// Errors are definitive. A malformed quote voids the remainder of the
// line: the tokenizer reports the error once, then reports exhaustion on
// every subsequent call. Fields already yielded from that line remain
// valid.
//
// # Type inference
//
// Infer applies a fixed precedence to canonicalized content:
//
//  1. Empty content → Null.
//  2. Content that is not digits-and-dots only → String.
//  3. Signed 64-bit base-10 integer parse → Integer.
//  4. 64-bit floating-point parse → Float.
//  5. Fallback → String (covers digits-and-dots content that parses as
//     neither, such as "." or "1.2.3").
//
// The digits-and-dots gate is a deliberate over-approximation and must
// stay that way; see Infer. InferString bypasses inference entirely so
// header names such as "123" remain textual.
//
// # Rows and headers
//
// Without a header, Row.Dump emits a JSON array in append order. With a
// header, it emits a JSON object in header order: a row shorter than the
// header pads with null, a row longer than the header silently drops the
// excess. Header length and row length never produce an error.
//
//	header, _ := parser.BuildHeader([]byte("string,int"))
//	row := parser.NewRow(header)
//	row.Append(parser.NewString("str"))
//	row.Append(parser.NewInteger(128))
//	line, _ := row.Dump() // {"string":"str","int":128}
//	row.Reset()           // ready for the next input line
//
// Value JSON encoding follows encoding/json: strings are escaped by the
// standard encoder, integers render without a fractional part, floats
// render with the encoder's canonical float64 formatting.
package parser
