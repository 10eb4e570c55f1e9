package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/berquerant/csv2json/errors"
	"github.com/berquerant/csv2json/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("one json line per row", func(t *testing.T) {
		var buf bytes.Buffer
		w := output.NewFromWriter(&buf, output.DefaultConfig(), nil)

		n, err := w.WriteRow([]byte(`["a",1]`))
		require.NoError(t, err)
		assert.Equal(t, 7, n)

		_, err = w.WriteRow([]byte(`{"x":null}`))
		require.NoError(t, err)
		require.NoError(t, w.Flush())

		assert.Equal(t, "[\"a\",1]\n{\"x\":null}\n", buf.String())
		assert.Equal(t, int64(2), w.Rows())
	})

	t.Run("write after close", func(t *testing.T) {
		var buf bytes.Buffer
		w := output.NewFromWriter(&buf, output.DefaultConfig(), nil)
		require.NoError(t, w.Close())

		_, err := w.WriteRow([]byte("[]"))
		require.ErrorIs(t, err, errors.ErrResourceClosed)
		assert.True(t, errors.IsFatal(err))

		// close is idempotent
		assert.NoError(t, w.Close())
	})

	t.Run("writes a file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.jsonl")
		cfg := output.DefaultConfig()
		cfg.Path = path

		w, err := output.New(cfg, nil)
		require.NoError(t, err)
		_, err = w.WriteRow([]byte(`[1]`))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[1]\n", string(data))
	})

	t.Run("append mode keeps existing rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("[0]\n"), 0o644))

		cfg := output.DefaultConfig()
		cfg.Path = path
		cfg.Append = true

		w, err := output.New(cfg, nil)
		require.NoError(t, err)
		_, err = w.WriteRow([]byte(`[1]`))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[0]\n[1]\n", string(data))
	})

	t.Run("truncate mode replaces existing rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.jsonl")
		require.NoError(t, os.WriteFile(path, []byte("[0]\n"), 0o644))

		cfg := output.DefaultConfig()
		cfg.Path = path

		w, err := output.New(cfg, nil)
		require.NoError(t, err)
		_, err = w.WriteRow([]byte(`[1]`))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[1]\n", string(data))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := output.Config{Path: "", BufferSize: 1}
		_, err := output.New(cfg, nil)
		require.ErrorIs(t, err, errors.ErrMissingConfig)
	})
}
