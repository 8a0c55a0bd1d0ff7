package store

import (
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/types"
)

// Store is the repository the resolved resources are written to
type Store interface {
	// HasChildren reports whether anything is stored below path
	HasChildren(path string) (bool, error)

	// Add stores resource at path, replacing what was there
	Add(path string, resource types.Resource) error

	// Remove deletes path and everything nested under it
	Remove(path string) error

	// Clear empties the store
	Clear() error
}

// Kinds accepted by Open
const (
	KindMemory     = "memory"
	KindFilesystem = "filesystem"
)

// Open creates the store configured by kind. path and mode only apply to
// filesystem stores.
func Open(kind, path, mode string, fsys types.FS) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFilesystem, "":
		return NewFilesystem(fsys, path, Mode(mode))
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown store kind %q", kind).
			WithDetail("kind", kind)
	}
}
