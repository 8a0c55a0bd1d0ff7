package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/rs/zerolog"
)

// Mode selects how Filesystem stores files
type Mode string

const (
	// ModeCopy copies file contents into the target tree
	ModeCopy Mode = "copy"
	// ModeSymlink links target files to their source
	ModeSymlink Mode = "symlink"
)

// Filesystem materializes the repository below a root directory
type Filesystem struct {
	fs     types.FS
	root   string
	mode   Mode
	logger zerolog.Logger
}

// NewFilesystem creates a store writing below root
func NewFilesystem(fsys types.FS, root string, mode Mode) (*Filesystem, error) {
	if root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "filesystem store needs a root directory")
	}
	if mode == "" {
		mode = ModeCopy
	}
	if mode != ModeCopy && mode != ModeSymlink {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown store mode %q", mode).
			WithDetail("mode", string(mode))
	}
	return &Filesystem{
		fs:     fsys,
		root:   root,
		mode:   mode,
		logger: logging.GetLogger("store.filesystem"),
	}, nil
}

// Root returns the directory the repository is written to
func (s *Filesystem) Root() string {
	return s.root
}

// Target returns the filesystem path backing a repository path
func (s *Filesystem) Target(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
}

func (s *Filesystem) HasChildren(p string) (bool, error) {
	entries, err := s.fs.ReadDir(s.Target(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrStore, "cannot list %s", p).WithDetail("path", p)
	}
	return len(entries) > 0, nil
}

func (s *Filesystem) Add(p string, resource types.Resource) error {
	target := s.Target(p)
	logger := s.logger.With().Str("path", p).Str("source", resource.SourcePath).Logger()

	existing, err := s.fs.Lstat(target)
	exists := err == nil

	if resource.IsDir() {
		if exists && !existing.IsDir() {
			if err := s.fs.Remove(target); err != nil {
				return s.storeError(err, "cannot replace file with directory", p)
			}
		}
		if err := s.fs.MkdirAll(target, 0755); err != nil {
			return s.storeError(err, "cannot create directory", p)
		}
		logger.Trace().Msg("Stored directory")
		return nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return s.storeError(err, "cannot create parent directory", p)
	}

	if s.mode == ModeSymlink {
		// Already linked to the right source
		if current, err := s.fs.Readlink(target); err == nil && current == resource.SourcePath {
			return nil
		}
	}

	if exists {
		if err := s.fs.RemoveAll(target); err != nil {
			return s.storeError(err, "cannot replace existing entry", p)
		}
	}

	if s.mode == ModeSymlink {
		if err := s.fs.Symlink(resource.SourcePath, target); err != nil {
			return s.storeError(err, "cannot create symlink", p)
		}
		logger.Trace().Msg("Linked file")
		return nil
	}

	data, err := s.fs.ReadFile(resource.SourcePath)
	if err != nil {
		return s.storeError(err, "cannot read source file", p)
	}
	if err := s.fs.WriteFile(target, data, 0644); err != nil {
		return s.storeError(err, "cannot write file", p)
	}
	logger.Trace().Msg("Copied file")
	return nil
}

func (s *Filesystem) Remove(p string) error {
	if err := s.fs.RemoveAll(s.Target(p)); err != nil {
		return s.storeError(err, "cannot remove", p)
	}
	return nil
}

func (s *Filesystem) Clear() error {
	if err := s.fs.RemoveAll(s.root); err != nil {
		return s.storeError(err, "cannot clear repository", "/")
	}
	if err := s.fs.MkdirAll(s.root, 0755); err != nil {
		return s.storeError(err, "cannot recreate repository root", "/")
	}
	return nil
}

func (s *Filesystem) storeError(err error, msg, p string) error {
	return errors.Wrapf(err, errors.ErrStore, "%s at %s", msg, p).
		WithDetail("path", p).
		WithDetail("root", s.root)
}
