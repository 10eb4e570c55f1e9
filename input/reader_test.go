package input_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/berquerant/csv2json/errors"
	"github.com/berquerant/csv2json/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainLines(t *testing.T, r *input.Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			return lines
		}
		lines = append(lines, string(line))
	}
}

func TestReader(t *testing.T) {
	t.Run("yields lines without terminators", func(t *testing.T) {
		r := input.NewFromReader(strings.NewReader("a,b\nc,d\n"), input.DefaultConfig(), nil)
		assert.Equal(t, []string{"a,b", "c,d"}, drainLines(t, r))
		assert.Equal(t, 2, r.LineNumber())
	})

	t.Run("crlf endings are normalized", func(t *testing.T) {
		r := input.NewFromReader(strings.NewReader("a,b\r\nc\r\n"), input.DefaultConfig(), nil)
		assert.Equal(t, []string{"a,b", "c"}, drainLines(t, r))
	})

	t.Run("missing final newline still yields the last line", func(t *testing.T) {
		r := input.NewFromReader(strings.NewReader("a\nb"), input.DefaultConfig(), nil)
		assert.Equal(t, []string{"a", "b"}, drainLines(t, r))
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		r := input.NewFromReader(strings.NewReader(""), input.DefaultConfig(), nil)
		assert.Empty(t, drainLines(t, r))
		assert.Equal(t, 0, r.LineNumber())
	})

	t.Run("blank lines are preserved", func(t *testing.T) {
		r := input.NewFromReader(strings.NewReader("a\n\nb\n"), input.DefaultConfig(), nil)
		assert.Equal(t, []string{"a", "", "b"}, drainLines(t, r))
	})

	t.Run("line exceeding the buffer", func(t *testing.T) {
		cfg := input.DefaultConfig()
		cfg.BufferSize = 8
		r := input.NewFromReader(strings.NewReader("0123456789abcdef\n"), cfg, nil)

		_, _, err := r.Next()
		require.ErrorIs(t, err, errors.ErrLineTooLong)
	})

	t.Run("reads a file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.csv")
		require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n"), 0o600))

		cfg := input.DefaultConfig()
		cfg.Path = path
		r, err := input.New(cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"x,y", "1,2"}, drainLines(t, r))
		require.NoError(t, r.Close())

		_, _, err = r.Next()
		require.ErrorIs(t, err, errors.ErrResourceClosed)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := input.DefaultConfig()
		cfg.Path = filepath.Join(t.TempDir(), "nope.csv")
		_, err := input.New(cfg, nil)
		require.ErrorIs(t, err, errors.ErrInputNotFound)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := input.Config{Path: "", BufferSize: 1}
		_, err := input.New(cfg, nil)
		require.ErrorIs(t, err, errors.ErrMissingConfig)
	})
}
