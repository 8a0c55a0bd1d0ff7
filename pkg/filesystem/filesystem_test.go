package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "pkg", "res")
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644))
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())

	data, err := fsys.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err, "reading a directory must fail")

	require.NoError(t, fsys.Rename(filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")))
	_, err = fsys.Stat(filepath.Join(dir, "b.txt"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.RemoveAll(filepath.Join(root, "pkg")))
	_, err = fsys.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryFS(t *testing.T) {
	exercise(t, filesystem.NewMemoryFS(), "/work")
}

func TestOSFS(t *testing.T) {
	exercise(t, filesystem.NewOS(), t.TempDir())
}

func TestMemoryFSSymlinkFallback(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll("/links", 0755))
	require.NoError(t, fsys.Symlink("/target/file", "/links/file"))

	target, err := fsys.Readlink("/links/file")
	require.NoError(t, err)
	assert.Equal(t, "/target/file", target)
}

func TestOSFSSymlink(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, fsys.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fsys.Symlink(target, link))

	got, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}
