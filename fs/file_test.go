package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "index.json")

		require.NoError(t, fs.WriteFileAtomic(path, []byte("[]")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "index.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, fs.WriteFileAtomic(path, []byte("new")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("reports storage error when parent is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))

		err := fs.WriteFileAtomic(filepath.Join(blocker, "index.json"), []byte("[]"))

		assert.Equal(t, ghdocs.ESTORAGE, ghdocs.ErrorCode(err))
	})
}

func TestReadContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("body"), 0644))

	content, ok, err := fs.ReadContent(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body", content)

	_, ok, err = fs.ReadContent(filepath.Join(dir, "missing.md"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = fs.ReadContent("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttachContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0644))
	entries := []ghdocs.Entry{
		{Collection: "docs", Filename: "a.md", FilePath: path},
		{Collection: "docs", Filename: "b.md", FilePath: filepath.Join(dir, "b.md")},
		ghdocs.Entry{Collection: "docs", Filename: "c.md", FilePath: path}.WithContent("kept"),
	}

	got, err := fs.AttachContent(entries)
	require.NoError(t, err)

	content, _ := got[0].Content()
	assert.Equal(t, "from disk", content)
	assert.False(t, got[1].HasContent())
	content, _ = got[2].Content()
	assert.Equal(t, "kept", content)
	assert.False(t, entries[0].HasContent())
}
