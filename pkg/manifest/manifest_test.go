package manifest

import (
	"testing"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/testutil"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Manifest {
	return &Manifest{
		Name: "acme/blog",
		Resources: map[string][]string{
			"/acme/blog":     {"res"},
			"/acme/blog/css": {"css", "@vendor/theme:dist"},
		},
		Override:      []string{"vendor/theme"},
		OverrideOrder: []string{"vendor/a", "vendor/b"},
		Packages: map[string]InstallEntry{
			"vendor/theme": {InstallPath: "vendor/theme"},
		},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path       string
		configured Format
		want       Format
	}{
		{"resman.json", FormatAuto, FormatJSON},
		{"resman.toml", "", FormatTOML},
		{"resman.yml", FormatAuto, FormatYAML},
		{"resman.yaml", FormatAuto, FormatYAML},
		{"manifest", FormatAuto, FormatJSON},
		{"resman.json", FormatTOML, FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.configured), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path, tt.configured))
		})
	}
}

func TestDecodeJSONAcceptsSingleReference(t *testing.T) {
	m, err := Decode([]byte(`{
		"name": "acme/blog",
		"resources": {"/acme/blog": "res", "/acme/blog/css": ["css", "@vendor/theme:dist"]},
		"override": ["vendor/theme"],
		"packages": {"vendor/theme": {"install-path": "vendor/theme"}},
		"extra": true
	}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "acme/blog", m.Name)
	assert.Equal(t, []string{"res"}, m.Resources["/acme/blog"])
	assert.Equal(t, []string{"css", "@vendor/theme:dist"}, m.Resources["/acme/blog/css"])
	assert.Equal(t, []string{"vendor/theme"}, m.Override)
	assert.Equal(t, "vendor/theme", m.Packages["vendor/theme"].InstallPath)
}

func TestDecodeEmptyJSON(t *testing.T) {
	m, err := Decode([]byte("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, m.Resources)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte(`{"resources": `), FormatJSON)
	require.Error(t, err)
	assert.Equal(t, errors.ErrManifestParse, errors.GetErrorCode(err))

	_, err = Decode([]byte(`{"override": {"a": 1}}`), FormatJSON)
	require.Error(t, err)
	assert.Equal(t, errors.ErrManifestParse, errors.GetErrorCode(err))

	_, err = Decode([]byte(`{}`), Format("ini"))
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestEncodeDecodeAllFormats(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(sample(), format)
			require.NoError(t, err)

			decoded, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, sample(), decoded)
		})
	}
}

func TestEncodeWritesSingleReferenceAsString(t *testing.T) {
	data, err := Encode(sample(), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"/acme/blog": "res"`)
	assert.Contains(t, string(data), `"override-order"`)
}

func TestToPackage(t *testing.T) {
	pkg, err := sample().ToPackage("ignored", "/packages/acme/blog")
	require.NoError(t, err)

	assert.Equal(t, "acme/blog", pkg.Name)
	assert.Equal(t, "/packages/acme/blog", pkg.InstallPath)
	require.Len(t, pkg.Mappings, 2)
	assert.Equal(t, "/acme/blog", pkg.Mappings[0].RepositoryPath)
	assert.Equal(t, "/acme/blog/css", pkg.Mappings[1].RepositoryPath)
	assert.True(t, pkg.Overrides("vendor/theme"))
}

func TestToPackageRejectsBadMapping(t *testing.T) {
	m := &Manifest{Resources: map[string][]string{"relative": {"res"}}}
	_, err := m.ToPackage("a", "/packages/a")
	require.Error(t, err)
	assert.Equal(t, errors.ErrResourceDefinition, errors.GetErrorCode(err))
	assert.Equal(t, "a", errors.GetErrorDetails(err)["package"])
}

func TestRootPackageConversion(t *testing.T) {
	m := sample()
	m.Packages["other"] = InstallEntry{InstallPath: "/opt/other"}

	root, err := m.ToRootPackage("/project/resman.json")
	require.NoError(t, err)

	assert.Equal(t, "/project", root.InstallPath)
	assert.Equal(t, []string{"vendor/a", "vendor/b"}, root.OverrideOrder)
	assert.Equal(t, []types.InstallInfo{
		{Name: "other", InstallPath: "/opt/other"},
		{Name: "vendor/theme", InstallPath: "/project/vendor/theme"},
	}, root.InstalledPackages)

	back := FromRootPackage(root)
	assert.Equal(t, m, back)
}

func TestStoreSaveAndLoadRoot(t *testing.T) {
	for _, name := range []string{"resman.json", "resman.toml", "resman.yaml"} {
		t.Run(name, func(t *testing.T) {
			fs := filesystem.NewMemoryFS()
			store := NewStore(fs, FormatAuto)

			root, err := sample().ToRootPackage("/project/" + name)
			require.NoError(t, err)
			require.NoError(t, store.SaveRootPackage(root))

			_, err = fs.Stat("/project/" + name + ".tmp")
			assert.Error(t, err, "temporary file must be renamed away")

			loaded, err := store.LoadRootPackage("/project/" + name)
			require.NoError(t, err)
			assert.Equal(t, root, loaded)
		})
	}
}

func TestStoreLoadMissingRoot(t *testing.T) {
	store := NewStore(filesystem.NewMemoryFS(), FormatAuto)

	root, err := store.LoadRootPackage("/work/site/resman.json")
	require.NoError(t, err)
	assert.Equal(t, "site", root.Name)
	assert.Equal(t, "/work/site", root.InstallPath)
	assert.Empty(t, root.Mappings)
}

func TestStoreSaveWithoutPath(t *testing.T) {
	store := NewStore(filesystem.NewMemoryFS(), FormatAuto)
	err := store.SaveRootPackage(&types.RootPackage{})
	assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
}

func TestStoreLoadPackage(t *testing.T) {
	fs := filesystem.NewMemoryFS()
	testutil.WriteFiles(t, fs, "/packages/a", map[string]string{
		"resman.yaml": "name: a\nresources:\n  /a: res\n",
		"res/x.txt":   "x",
	})
	store := NewStore(fs, FormatAuto)

	pkg, err := store.LoadPackage("a", "/packages/a", "resman.yaml")
	require.NoError(t, err)
	require.Len(t, pkg.Mappings, 1)
	assert.Equal(t, []string{"res"}, pkg.Mappings[0].PathReferences)

	empty, err := store.LoadPackage("b", "/packages/b", "resman.yaml")
	require.NoError(t, err)
	assert.Equal(t, "b", empty.Name)
	assert.Empty(t, empty.Mappings)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filesystem.NewMemoryFS(), "/nope/resman.json", FormatAuto)
	require.Error(t, err)
	assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(err))
	assert.Equal(t, "/nope/resman.json", errors.GetErrorDetails(err)["path"])
}
