package types

import (
	"path/filepath"
	"slices"
)

// Package is an installed package contributing resources to the repository
type Package struct {
	// Name uniquely identifies the package, e.g. "acme/blog"
	Name string

	// InstallPath is the absolute path of the package on disk
	InstallPath string

	// Mappings are the resource mappings declared by the package
	Mappings []ResourceMapping

	// OverriddenPackages lists the packages whose resources this package
	// overrides when both map the same repository path
	OverriddenPackages []string
}

// GetFilePath returns the full path to a file within the package
func (p *Package) GetFilePath(rel string) string {
	return filepath.Join(p.InstallPath, filepath.FromSlash(rel))
}

// Mapping returns the mapping declared for the given repository path
func (p *Package) Mapping(repositoryPath string) (ResourceMapping, bool) {
	for _, m := range p.Mappings {
		if m.RepositoryPath == repositoryPath {
			return m, true
		}
	}
	return ResourceMapping{}, false
}

// Overrides reports whether the package declares name as overridden
func (p *Package) Overrides(name string) bool {
	return slices.Contains(p.OverriddenPackages, name)
}

// InstallInfo records where an installed package lives, as listed in the
// root manifest
type InstallInfo struct {
	Name        string
	InstallPath string
}

// RootPackage is the project package. It is the only package whose
// manifest resman rewrites.
type RootPackage struct {
	Package

	// OverrideOrder resolves conflicts between installed packages: each
	// package overrides the one listed before it
	OverrideOrder []string

	// InstalledPackages lists the packages installed into the project
	InstalledPackages []InstallInfo

	// ManifestPath is where the root manifest is persisted
	ManifestPath string
}

// SetMapping adds or replaces the mapping for m.RepositoryPath, keeping
// declaration order for existing paths
func (r *RootPackage) SetMapping(m ResourceMapping) {
	for i, existing := range r.Mappings {
		if existing.RepositoryPath == m.RepositoryPath {
			r.Mappings[i] = m
			return
		}
	}
	r.Mappings = append(r.Mappings, m)
}

// RemoveMapping drops the mapping for repositoryPath and reports whether it existed
func (r *RootPackage) RemoveMapping(repositoryPath string) bool {
	for i, existing := range r.Mappings {
		if existing.RepositoryPath == repositoryPath {
			r.Mappings = slices.Delete(r.Mappings, i, i+1)
			return true
		}
	}
	return false
}

// AddOverriddenPackage records name as overridden unless already present
func (r *RootPackage) AddOverriddenPackage(name string) bool {
	if r.Overrides(name) {
		return false
	}
	r.OverriddenPackages = append(r.OverriddenPackages, name)
	return true
}

// Clone returns a deep copy used to roll back failed mutations
func (r *RootPackage) Clone() *RootPackage {
	c := *r
	c.Mappings = make([]ResourceMapping, len(r.Mappings))
	for i, m := range r.Mappings {
		c.Mappings[i] = m.Clone()
	}
	c.OverriddenPackages = slices.Clone(r.OverriddenPackages)
	c.OverrideOrder = slices.Clone(r.OverrideOrder)
	c.InstalledPackages = slices.Clone(r.InstalledPackages)
	return &c
}
