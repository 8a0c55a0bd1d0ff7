package manifest

import (
	"maps"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/types"
)

// Manifest is the decoded content of a manifest file
type Manifest struct {
	Name          string                  `manifest:"name"`
	Resources     map[string][]string     `manifest:"resources"`
	Override      []string                `manifest:"override"`
	OverrideOrder []string                `manifest:"override-order"`
	Packages      map[string]InstallEntry `manifest:"packages"`
}

// InstallEntry records an installed package in the root manifest
type InstallEntry struct {
	InstallPath string `manifest:"install-path"`
}

// ToPackage converts the manifest of a package installed at installPath.
// name is used when the manifest carries none.
func (m *Manifest) ToPackage(name, installPath string) (*types.Package, error) {
	if m.Name != "" {
		name = m.Name
	}
	pkg := &types.Package{
		Name:               name,
		InstallPath:        installPath,
		OverriddenPackages: slices.Clone(m.Override),
	}
	for _, repoPath := range slices.Sorted(maps.Keys(m.Resources)) {
		mapping, err := types.NewResourceMapping(repoPath, m.Resources[repoPath]...)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrResourceDefinition,
				"invalid resource mapping in package %q", name).
				WithDetail("package", name).
				WithDetail("repositoryPath", repoPath)
		}
		pkg.Mappings = append(pkg.Mappings, mapping)
	}
	return pkg, nil
}

// ToRootPackage converts the root manifest stored at manifestPath
func (m *Manifest) ToRootPackage(manifestPath string) (*types.RootPackage, error) {
	installPath := filepath.Dir(manifestPath)
	pkg, err := m.ToPackage(filepath.Base(installPath), installPath)
	if err != nil {
		return nil, err
	}
	root := &types.RootPackage{
		Package:       *pkg,
		OverrideOrder: slices.Clone(m.OverrideOrder),
		ManifestPath:  manifestPath,
	}
	for _, name := range slices.Sorted(maps.Keys(m.Packages)) {
		entry := m.Packages[name]
		path := entry.InstallPath
		if path == "" {
			path = name
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(installPath, filepath.FromSlash(path))
		}
		root.InstalledPackages = append(root.InstalledPackages, types.InstallInfo{
			Name:        name,
			InstallPath: path,
		})
	}
	return root, nil
}

// FromRootPackage builds the manifest persisting root. Install paths below
// the project directory are written relative to it.
func FromRootPackage(root *types.RootPackage) *Manifest {
	m := &Manifest{
		Name:          root.Name,
		Override:      slices.Clone(root.OverriddenPackages),
		OverrideOrder: slices.Clone(root.OverrideOrder),
	}
	if len(root.Mappings) > 0 {
		m.Resources = make(map[string][]string, len(root.Mappings))
		for _, mapping := range root.Mappings {
			m.Resources[mapping.RepositoryPath] = slices.Clone(mapping.PathReferences)
		}
	}
	if len(root.InstalledPackages) > 0 {
		m.Packages = make(map[string]InstallEntry, len(root.InstalledPackages))
		for _, info := range root.InstalledPackages {
			path := info.InstallPath
			if rel, err := filepath.Rel(root.InstallPath, path); err == nil && filepath.IsLocal(rel) {
				path = filepath.ToSlash(rel)
			}
			m.Packages[info.Name] = InstallEntry{InstallPath: path}
		}
	}
	return m
}
