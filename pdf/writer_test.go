package pdf

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

	boom := errors.New("boom")
	_, err := writeFileAtomic(out, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	size, err := writeFileAtomic(out, func(w io.Writer) error {
		_, err := io.WriteString(w, "%PDF")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputPermissions, info.Mode().Perm())
}
