package types

import (
	"io/fs"
)

// FS is the filesystem package trees are read from and filesystem stores
// write to. Paths are native filesystem paths.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow symlinks. Filesystems without symlinks may
	// answer like Stat.
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	// ReadDir returns entries sorted by name
	ReadDir(name string) ([]fs.DirEntry, error)
	Readlink(name string) (string, error)

	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}
