package packages

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/manifest"
	"github.com/arthur-debert/resman/pkg/types"
)

// Options tune Load
type Options struct {
	// Filename is the manifest file name looked up in every package
	Filename string
	// Format forces a manifest codec; auto picks one from Filename
	Format manifest.Format
}

// DefaultFilename is the manifest file name when none is configured
const DefaultFilename = "resman.json"

// Load reads the root manifest in rootDir and the manifest of every
// installed package it lists. Packages without a manifest contribute no
// mappings. A package whose manifest names it differently keeps the name
// the root manifest lists.
func Load(fs types.FS, rootDir string, opts Options) (*types.RootPackage, *Collection, error) {
	logger := logging.GetLogger("packages")
	if opts.Filename == "" {
		opts.Filename = DefaultFilename
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid project directory %s", rootDir)
	}
	info, err := fs.Stat(absRoot)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrNotFound, "project directory %s does not exist", absRoot).
			WithDetail("path", absRoot)
	}
	if !info.IsDir() {
		return nil, nil, errors.Newf(errors.ErrInvalidInput, "project path %s is not a directory", absRoot).
			WithDetail("path", absRoot)
	}

	store := manifest.NewStore(fs, opts.Format)
	root, err := store.LoadRootPackage(filepath.Join(absRoot, opts.Filename))
	if err != nil {
		return nil, nil, err
	}

	installs := slices.Clone(root.InstalledPackages)
	slices.SortFunc(installs, func(a, b types.InstallInfo) int { return cmp.Compare(a.Name, b.Name) })

	installed := make([]*types.Package, 0, len(installs))
	for _, info := range installs {
		pkg, err := store.LoadPackage(info.Name, info.InstallPath, opts.Filename)
		if err != nil {
			return nil, nil, err
		}
		if pkg.Name != info.Name {
			logger.Warn().
				Str("listed", info.Name).
				Str("declared", pkg.Name).
				Str("path", info.InstallPath).
				Msg("Package manifest declares a different name, using the listed one")
			pkg.Name = info.Name
		}
		installed = append(installed, pkg)
	}

	collection, err := NewCollection(root, installed...)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug().
		Str("root", root.Name).
		Int("installed", len(installed)).
		Msg("Packages loaded")

	return root, collection, nil
}
