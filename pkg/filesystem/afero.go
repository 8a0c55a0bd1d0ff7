package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/resman/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs. Stat, MkdirAll, Remove, RemoveAll and Rename
// come straight from the embedded filesystem.
type aferoFS struct {
	afero.Fs
}

// NewAferoFS wraps any afero filesystem
func NewAferoFS(fsys afero.Fs) types.FS {
	return &aferoFS{Fs: fsys}
}

// NewOS returns the real filesystem
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemoryFS returns an in-memory filesystem, mostly for tests
func NewMemoryFS() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.Fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.Fs, name, data, perm)
}

// ReadDir lists name sorted by file name
func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.Fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.Fs.(afero.Linker); ok {
		return linker.SymlinkIfPossible(oldname, newname)
	}
	// MemMapFs has no symlinks; store the target as content instead
	return afero.WriteFile(a.Fs, newname, []byte(oldname), 0777|os.ModeSymlink)
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if reader, ok := a.Fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	content, err := afero.ReadFile(a.Fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.Fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.Stat(name)
}
