package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inferAll runs the full inference path over canonical test content.
func inferAll(fields ...string) []Value {
	values := make([]Value, len(fields))
	for i, f := range fields {
		values[i] = Infer(Field{raw: []byte(f)})
	}
	return values
}

func TestRow(t *testing.T) {
	t.Run("array without header", func(t *testing.T) {
		row := NewRow(nil)
		for _, v := range inferAll("str", "128", "12.8", "") {
			row.Append(v)
		}

		line, err := row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `["str",128,12.8,null]`, string(line))
	})

	t.Run("empty row without header", func(t *testing.T) {
		line, err := NewRow(nil).Dump()
		require.NoError(t, err)
		assert.Equal(t, "[]", string(line))
	})

	t.Run("object drops values beyond the header", func(t *testing.T) {
		header, err := BuildHeader([]byte("string,int"))
		require.NoError(t, err)

		row := NewRow(header)
		for _, v := range inferAll("str", "128", "12.8", "") {
			row.Append(v)
		}

		line, err := row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"string":"str","int":128}`, string(line))
	})

	t.Run("object pads missing values with null", func(t *testing.T) {
		header, err := BuildHeader([]byte("string,int,float,null"))
		require.NoError(t, err)

		row := NewRow(header)
		for _, v := range inferAll("str", "128") {
			row.Append(v)
		}

		line, err := row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"string":"str","int":128,"float":null,"null":null}`, string(line))
	})

	t.Run("empty row with header is all null", func(t *testing.T) {
		header, err := BuildHeader([]byte("a,b"))
		require.NoError(t, err)

		line, err := NewRow(header).Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"a":null,"b":null}`, string(line))
	})

	t.Run("duplicate header names survive encoding", func(t *testing.T) {
		header, err := BuildHeader([]byte("a,a"))
		require.NoError(t, err)

		row := NewRow(header)
		row.Append(NewInteger(1))
		row.Append(NewInteger(2))

		line, err := row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"a":1,"a":2}`, string(line))
	})

	t.Run("keys and strings are json escaped", func(t *testing.T) {
		header := NewHeader()
		require.NoError(t, header.Append(NewString(`col"1`)))

		row := NewRow(header)
		row.Append(NewString("a\tb"))

		line, err := row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"col\"1":"a\tb"}`, string(line))
	})

	t.Run("reset reuses the row across lines", func(t *testing.T) {
		header, err := BuildHeader([]byte("a,b"))
		require.NoError(t, err)
		row := NewRow(header)

		row.Append(NewString("x"))
		row.Append(NewInteger(1))
		line, err := row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"a":"x","b":1}`, string(line))

		row.Reset()
		assert.Equal(t, 0, row.Len())

		row.Append(NewFloat(2.5))
		line, err = row.Dump()
		require.NoError(t, err)
		assert.Equal(t, `{"a":2.5,"b":null}`, string(line))
	})
}
