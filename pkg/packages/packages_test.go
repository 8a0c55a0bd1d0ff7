package packages

import (
	"testing"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/testutil"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionOrderAndLookup(t *testing.T) {
	root := &types.RootPackage{Package: types.Package{Name: "project"}}
	c, err := NewCollection(root, &types.Package{Name: "a"}, &types.Package{Name: "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "project"}, c.Names())
	assert.Equal(t, 3, c.Len())
	assert.Same(t, root, c.Root())
	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("zzz"))

	pkg, ok := c.Package("project")
	require.True(t, ok)
	assert.Same(t, &root.Package, pkg)

	_, err = c.Get("zzz")
	assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(err))
}

func TestCollectionRejectsDuplicates(t *testing.T) {
	root := &types.RootPackage{Package: types.Package{Name: "a"}}
	_, err := NewCollection(root, &types.Package{Name: "a"})
	assert.Equal(t, errors.ErrAlreadyExists, errors.GetErrorCode(err))
}

func TestLoad(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	testutil.WriteFiles(t, fs, "/project", map[string]string{
		"resman.json": `{
			"name": "acme/site",
			"resources": {"/site": "res"},
			"override-order": ["vendor/b", "vendor/a"],
			"packages": {
				"vendor/b": {"install-path": "vendor/b"},
				"vendor/a": {"install-path": "vendor/a"},
				"vendor/bare": {"install-path": "/opt/bare"}
			}
		}`,
		"res/index.html":       "site",
		"vendor/a/resman.json": `{"name": "vendor/a", "resources": {"/x": "x"}}`,
		"vendor/a/x/file.txt":  "a",
		"vendor/b/resman.json": `{"name": "renamed", "resources": {"/x": "x"}, "override": ["vendor/a"]}`,
		"vendor/b/x/file.txt":  "b",
	})
	testutil.WriteFiles(t, fs, "/opt/bare", map[string]string{"readme": "bare"})

	root, c, err := Load(fs, "/project", Options{})
	require.NoError(t, err)

	assert.Equal(t, "acme/site", root.Name)
	assert.Equal(t, "/project/resman.json", root.ManifestPath)
	assert.Equal(t, []string{"vendor/b", "vendor/a"}, root.OverrideOrder)
	assert.Equal(t, []string{"vendor/a", "vendor/b", "vendor/bare", "acme/site"}, c.Names())

	b, err := c.Get("vendor/b")
	require.NoError(t, err)
	assert.Equal(t, "vendor/b", b.Name, "listed name wins")
	assert.Equal(t, "/project/vendor/b", b.InstallPath)
	assert.True(t, b.Overrides("vendor/a"))

	bare, err := c.Get("vendor/bare")
	require.NoError(t, err)
	assert.Equal(t, "/opt/bare", bare.InstallPath)
	assert.Empty(t, bare.Mappings)
}

func TestLoadWithoutRootManifest(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/work/site", 0755))

	root, c, err := Load(fs, "/work/site", Options{Filename: "resman.toml"})
	require.NoError(t, err)
	assert.Equal(t, "site", root.Name)
	assert.Equal(t, "/work/site/resman.toml", root.ManifestPath)
	assert.Equal(t, []string{"site"}, c.Names())
}

func TestLoadErrors(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	testutil.WriteFiles(t, fs, "/", map[string]string{
		"file":                 "not a directory",
		"broken/resman.json":   `{"resources": [`,
		"badpkg/resman.json":   `{"packages": {"p": {"install-path": "p"}}}`,
		"badpkg/p/resman.json": `{"resources": {"relative": "x"}}`,
	})

	tests := []struct {
		name string
		dir  string
		code errors.ErrorCode
	}{
		{"missing directory", "/nope", errors.ErrNotFound},
		{"not a directory", "/file", errors.ErrInvalidInput},
		{"broken root manifest", "/broken", errors.ErrManifestParse},
		{"broken package manifest", "/badpkg", errors.ErrResourceDefinition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(fs, tt.dir, Options{})
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}
