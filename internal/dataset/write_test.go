package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, WriteFileAtomic(path, func(w io.Writer) error {
		_, err := fmt.Fprint(w, `{"type":"FeatureCollection","features":[]}`)
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"FeatureCollection","features":[]}`, string(data))

	t.Run("failed write keeps the old file", func(t *testing.T) {
		boom := errors.New("boom")
		err := WriteFileAtomic(path, func(w io.Writer) error {
			fmt.Fprint(w, "partial")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "FeatureCollection")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file removed")
	})

	t.Run("missing directory", func(t *testing.T) {
		err := WriteFileAtomic(filepath.Join(dir, "nope", "out.json"), func(io.Writer) error { return nil })
		assert.Error(t, err)
	})
}
