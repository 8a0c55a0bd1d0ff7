package manifest

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/rs/zerolog"
)

const component = "manifest"

// Exists reports whether a manifest file is present at path
func Exists(fs types.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Read loads and decodes the manifest at path
func Read(fs types.FS, path string, format Format) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		code := errors.ErrManifestLoad
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot read manifest %s", path).
			WithDetail("path", path)
	}
	m, err := Decode(data, FormatFor(path, format))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	logger := logging.GetLogger(component)
	logger.Debug().Str("path", path).Int("resources", len(m.Resources)).Msg("Manifest loaded")
	return m, nil
}

// Write encodes m and replaces the file at path. The content goes to a
// sibling temporary file first and is renamed into place.
func Write(fs types.FS, path string, m *Manifest, format Format) error {
	data, err := Encode(m, FormatFor(path, format))
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "cannot create directory for %s", path).
			WithDetail("path", path)
	}
	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "cannot write manifest %s", path).
			WithDetail("path", path)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrManifestWrite, "cannot replace manifest %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger(component)
	logger.Debug().Str("path", path).Msg("Manifest written")
	return nil
}

// Store persists root packages to their manifest files
type Store struct {
	fs     types.FS
	format Format
	logger zerolog.Logger
}

// NewStore returns a Store writing through fs in the given format
func NewStore(fs types.FS, format Format) *Store {
	return &Store{fs: fs, format: format, logger: logging.GetLogger(component)}
}

// SaveRootPackage writes root to root.ManifestPath
func (s *Store) SaveRootPackage(root *types.RootPackage) error {
	if root.ManifestPath == "" {
		return errors.Newf(errors.ErrInvalidInput, "root package %q has no manifest path", root.Name)
	}
	return Write(s.fs, root.ManifestPath, FromRootPackage(root), s.format)
}

// LoadRootPackage reads the root manifest at path. A missing file yields an
// empty root package named after its directory.
func (s *Store) LoadRootPackage(path string) (*types.RootPackage, error) {
	if !Exists(s.fs, path) {
		s.logger.Info().Str("path", path).Msg("No root manifest, starting empty")
		return &types.RootPackage{
			Package: types.Package{
				Name:        filepath.Base(filepath.Dir(path)),
				InstallPath: filepath.Dir(path),
			},
			ManifestPath: path,
		}, nil
	}
	m, err := Read(s.fs, path, s.format)
	if err != nil {
		return nil, err
	}
	return m.ToRootPackage(path)
}

// LoadPackage reads the manifest of a package installed at installPath. A
// missing manifest yields a package with no mappings.
func (s *Store) LoadPackage(name, installPath, filename string) (*types.Package, error) {
	path := filepath.Join(installPath, filename)
	if !Exists(s.fs, path) {
		s.logger.Debug().Str("package", name).Str("path", path).Msg("Package has no manifest")
		return &types.Package{Name: name, InstallPath: installPath}, nil
	}
	m, err := Read(s.fs, path, s.format)
	if err != nil {
		return nil, err
	}
	return m.ToPackage(name, installPath)
}
