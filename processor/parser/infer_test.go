package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"empty", "", ""},
		{"no quotes untouched", "abc,def", "abc,def"},
		{"doubled quote collapses", `a""b`, `a"b`},
		{"only doubled quotes", `""""`, `""`},
		{"doubled quote at start", `""x`, `"x`},
		{"doubled quote at end", `x""`, `x"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Canonicalize([]byte(test.raw)))
		})
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Value
	}{
		{"empty is null", "", NewNull()},
		{"integer", "123", NewInteger(123)},
		{"integer with leading zeros", "007", NewInteger(7)},
		{"float", "123.4", NewFloat(123.4)},
		{"float with trailing dot", "1.", NewFloat(1)},
		{"digits then letter", "12a", NewString("12a")},
		{"plain text", "str", NewString("str")},
		{"negative is not numeric for the gate", "-12", NewString("-12")},
		{"lone dot falls back to string", ".", NewString(".")},
		{"double dot falls back to string", "..", NewString("..")},
		{"versionish falls back to string", "1.2.3", NewString("1.2.3")},
		{"escaped quotes canonicalized", `a""b`, NewString(`a"b`)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Infer(Field{raw: []byte(test.raw)}))
		})
	}

	t.Run("integer overflow degrades to float", func(t *testing.T) {
		v := Infer(Field{raw: []byte("9999999999999999999999")})
		require.Equal(t, KindFloat, v.Kind())
		f, ok := v.Float()
		require.True(t, ok)
		assert.InEpsilon(t, 1e22, f, 1e-9)
	})

	t.Run("quoted empty field is still null", func(t *testing.T) {
		assert.Equal(t, NewNull(), Infer(Field{raw: []byte(""), quoted: true}))
	})
}

func TestInferString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"numeric name stays textual", "123", "123"},
		{"float name stays textual", "12.8", "12.8"},
		{"empty name stays a string", "", ""},
		{"escaped quotes canonicalized", `a""b`, `a"b`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := InferString(Field{raw: []byte(test.raw)})
			require.Equal(t, KindString, v.Kind())
			s, ok := v.Text()
			require.True(t, ok)
			assert.Equal(t, test.expected, s)
		})
	}
}

func TestValueAccessors(t *testing.T) {
	t.Run("exactly one variant is active", func(t *testing.T) {
		v := NewInteger(42)
		i, ok := v.Integer()
		require.True(t, ok)
		assert.Equal(t, int64(42), i)

		_, ok = v.Text()
		assert.False(t, ok)
		_, ok = v.Float()
		assert.False(t, ok)
		assert.Equal(t, KindInteger, v.Kind())
	})

	t.Run("kind strings", func(t *testing.T) {
		assert.Equal(t, "null", KindNull.String())
		assert.Equal(t, "string", KindString.String())
		assert.Equal(t, "integer", KindInteger.String())
		assert.Equal(t, "float", KindFloat.String())
		assert.Equal(t, "unknown", Kind(999).String())
	})

	t.Run("marshal json", func(t *testing.T) {
		tests := []struct {
			value    Value
			expected string
		}{
			{NewNull(), "null"},
			{NewString("a\"b"), `"a\"b"`},
			{NewInteger(-5), "-5"},
			{NewFloat(12.8), "12.8"},
		}
		for _, test := range tests {
			b, err := test.value.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, test.expected, string(b))
		}
	})
}
