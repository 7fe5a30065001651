package storage

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLocalSource_OpenAsGiven(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "testFile.txt", "Hello, World!")

	src, err := NewLocalSource("")
	require.NoError(t, err)

	rc, err := src.Open(context.Background(), p)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(data))
}

func TestLocalSource_Missing(t *testing.T) {
	src, err := NewLocalSource("")
	require.NoError(t, err)

	_, err = src.Open(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalSource_Directory(t *testing.T) {
	src, err := NewLocalSource("")
	require.NoError(t, err)

	_, err = src.Open(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestLocalSource_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "a")

	src, err := NewLocalSource("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Open(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalSource_Root(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/file.txt", "inside")

	src, err := NewLocalSource(root)
	require.NoError(t, err)

	for _, p := range []string{"./sub/file.txt", "/sub/file.txt", "sub/../sub/file.txt"} {
		rc, err := src.Open(context.Background(), p)
		require.NoError(t, err, p)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, "inside", string(data), p)
	}

	// ".." cannot climb out of root; it resolves to a path under root instead
	_, err = src.Open(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewLocalSource_InvalidRoot(t *testing.T) {
	_, err := NewLocalSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := writeFile(t, t.TempDir(), "f.txt", "x")
	_, err = NewLocalSource(file)
	assert.Error(t, err)
}
