package testutil

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/arthur-debert/resman/pkg/types"
)

// PackageFixture describes an installed package laid out on a filesystem
type PackageFixture struct {
	Name        string
	InstallPath string
	// Files maps slash paths relative to InstallPath to content. A path
	// ending in "/" creates an empty directory.
	Files map[string]string
	// Mappings maps repository paths to path references
	Mappings map[string][]string
	// Overrides lists the packages this one overrides
	Overrides []string
}

// Lookup is a PackageLookup over a plain map
type Lookup map[string]*types.Package

// Package implements mapping.PackageLookup
func (l Lookup) Package(name string) (*types.Package, bool) {
	p, ok := l[name]
	return p, ok
}

// WriteFiles creates files and directories below root
func WriteFiles(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := fsys.MkdirAll(full, 0755); err != nil {
				t.Fatalf("failed to create directory %s: %v", full, err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", full, err)
		}
		if err := fsys.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", full, err)
		}
	}
}

// Mapping builds a ResourceMapping or fails the test
func Mapping(t *testing.T, repositoryPath string, references ...string) types.ResourceMapping {
	t.Helper()

	m, err := types.NewResourceMapping(repositoryPath, references...)
	if err != nil {
		t.Fatalf("invalid mapping %s: %v", repositoryPath, err)
	}
	return m
}

// CreatePackage writes the fixture's files and returns the package it describes.
// Mappings are added in repository path order.
func CreatePackage(t *testing.T, fsys types.FS, fixture PackageFixture) *types.Package {
	t.Helper()

	if fixture.InstallPath == "" {
		fixture.InstallPath = filepath.Join("/packages", filepath.FromSlash(fixture.Name))
	}
	if err := fsys.MkdirAll(fixture.InstallPath, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", fixture.InstallPath, err)
	}
	WriteFiles(t, fsys, fixture.InstallPath, fixture.Files)

	pkg := &types.Package{
		Name:               fixture.Name,
		InstallPath:        fixture.InstallPath,
		OverriddenPackages: fixture.Overrides,
	}
	for _, repoPath := range slices.Sorted(maps.Keys(fixture.Mappings)) {
		pkg.Mappings = append(pkg.Mappings, Mapping(t, repoPath, fixture.Mappings[repoPath]...))
	}
	return pkg
}

// CreateRootPackage is CreatePackage for the project package
func CreateRootPackage(t *testing.T, fsys types.FS, fixture PackageFixture, overrideOrder ...string) *types.RootPackage {
	t.Helper()

	if fixture.InstallPath == "" {
		fixture.InstallPath = "/project"
	}
	pkg := CreatePackage(t, fsys, fixture)
	return &types.RootPackage{
		Package:       *pkg,
		OverrideOrder: overrideOrder,
		ManifestPath:  filepath.Join(fixture.InstallPath, "resman.json"),
	}
}
