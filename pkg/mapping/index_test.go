package mapping

import (
	"testing"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/testutil"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fs     types.FS
	lookup testutil.Lookup
	index  *Index
}

func newFixture(t *testing.T, pkgs ...testutil.PackageFixture) *fixture {
	t.Helper()

	f := &fixture{fs: filesystem.NewMemoryFS(), lookup: testutil.Lookup{}}
	for _, p := range pkgs {
		pkg := testutil.CreatePackage(t, f.fs, p)
		f.lookup[pkg.Name] = pkg
	}
	f.index = NewIndex(f.fs, f.lookup)
	return f
}

func (f *fixture) load(t *testing.T, pkgName, repoPath string, refs ...string) []Entry {
	t.Helper()

	entries, err := f.index.Load(f.lookup[pkgName], testutil.Mapping(t, repoPath, refs...))
	require.NoError(t, err)
	return entries
}

func repositoryPaths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.RepositoryPath
	}
	return paths
}

func TestLoadExpandsDirectoriesParentsFirst(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{
		Name: "a",
		Files: map[string]string{
			"res/b.txt":       "b",
			"res/a.txt":       "a",
			"res/sub/c.txt":   "c",
			"res/empty/":      "",
			"single/file.txt": "f",
		},
	})

	entries := f.load(t, "a", "/app", "res")

	assert.Equal(t, []string{
		"/app",
		"/app/a.txt",
		"/app/b.txt",
		"/app/empty",
		"/app/sub",
		"/app/sub/c.txt",
	}, repositoryPaths(entries))
	assert.Equal(t, types.ResourceDirectory, entries[0].Kind)
	assert.Equal(t, "/packages/a/res", entries[0].FilesystemPath)
	assert.Equal(t, types.ResourceFile, entries[1].Kind)
	assert.Equal(t, "/packages/a/res/a.txt", entries[1].FilesystemPath)

	fileEntries := f.load(t, "a", "/file.txt", "single/file.txt")
	require.Len(t, fileEntries, 1)
	assert.Equal(t, types.NewFileResource("/packages/a/single/file.txt"), fileEntries[0].Resource())

	assert.Equal(t, []string{"a"}, f.index.Contributors("/app/sub/c.txt"))
	assert.Contains(t, f.index.Unchecked(), "/app/sub/c.txt")
	assert.Contains(t, f.index.Unchecked(), "/file.txt")
}

func TestLoadErrorsLeaveIndexUntouched(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{Name: "a", Files: map[string]string{"res/x": "x"}})

	_, err := f.index.Load(f.lookup["a"], testutil.Mapping(t, "/app", "res", "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrResourceDefinition), "got %v", err)

	_, err = f.index.Load(f.lookup["a"], testutil.Mapping(t, "/app", "@ghost:res"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPackage), "got %v", err)

	assert.False(t, f.index.Has("a", "/app"))
	assert.Empty(t, f.index.RepositoryPaths())
	assert.Empty(t, f.index.Unchecked())
}

func TestLoadOptionalMissingReferenceYieldsNothing(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{Name: "a", Files: map[string]string{"res/x": "x"}})

	entries := f.load(t, "a", "/opt", "@?missing:sub")

	assert.Empty(t, entries)
	assert.True(t, f.index.Has("a", "/opt"))
	assert.Empty(t, f.index.Contributors("/opt"))
}

func TestLoadCrossPackageReference(t *testing.T) {
	f := newFixture(t,
		testutil.PackageFixture{Name: "a", Files: map[string]string{"res/x": "x"}},
		testutil.PackageFixture{Name: "b", Files: map[string]string{"dist/y": "y"}},
	)

	entries := f.load(t, "a", "/app", "res", "@b:dist")

	assert.Equal(t, []string{"/app", "/app/x", "/app", "/app/y"}, repositoryPaths(entries))
	assert.Equal(t, []string{"a"}, f.index.Contributors("/app/y"), "the referencing package contributes")

	owned, ok := f.index.Owns("a", "/app")
	require.True(t, ok)
	assert.Equal(t, "/packages/b/dist", owned.FilesystemPath, "later references win")
}

func TestContributorsAcrossPackages(t *testing.T) {
	f := newFixture(t,
		testutil.PackageFixture{Name: "a", Files: map[string]string{"res/config.yml": "a"}},
		testutil.PackageFixture{Name: "b", Files: map[string]string{"config.yml": "b"}},
	)

	f.load(t, "a", "/app", "res")
	f.load(t, "b", "/app/config.yml", "config.yml")

	assert.Equal(t, []string{"a", "b"}, f.index.Contributors("/app/config.yml"))
	assert.Equal(t, []string{"a"}, f.index.Contributors("/app"))
}

func TestUnload(t *testing.T) {
	f := newFixture(t,
		testutil.PackageFixture{Name: "a", Files: map[string]string{"res/x": "x", "extra/x": "x2"}},
		testutil.PackageFixture{Name: "b", Files: map[string]string{"res/x": "bx"}},
	)
	f.load(t, "a", "/app", "res")
	f.load(t, "a", "/app/x", "extra/x")
	f.load(t, "b", "/app", "res")

	entries, ok := f.index.Unload("a", "/app")
	require.True(t, ok)
	assert.Equal(t, []string{"/app", "/app/x"}, repositoryPaths(entries))

	assert.Equal(t, []string{"b"}, f.index.Contributors("/app"))
	assert.Equal(t, []string{"a", "b"}, f.index.Contributors("/app/x"), "a still maps /app/x directly")
	assert.Equal(t, []string{"/app", "/app/x"}, f.index.Removed())

	_, ok = f.index.Unload("a", "/app")
	assert.False(t, ok)

	f.index.ClearRemoved("/app")
	assert.Equal(t, []string{"/app/x"}, f.index.Removed())
}

func TestMappingsSortedAncestorsFirst(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{Name: "a", Files: map[string]string{"x": "x", "d/": ""}})
	f.load(t, "a", "/b/c", "x")
	f.load(t, "a", "/b", "d")
	f.load(t, "a", "/a", "x")

	var paths []string
	for _, m := range f.index.Mappings("a") {
		paths = append(paths, m.RepositoryPath)
	}
	assert.Equal(t, []string{"/a", "/b", "/b/c"}, paths)
}

func TestOwnsPrefersNestedMapping(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{Name: "a", Files: map[string]string{"res/x": "1", "override-x": "2"}})
	f.load(t, "a", "/app/x", "override-x")
	f.load(t, "a", "/app", "res")

	owned, ok := f.index.Owns("a", "/app/x")
	require.True(t, ok)
	assert.Equal(t, "/packages/a/override-x", owned.FilesystemPath)

	_, ok = f.index.Owns("a", "/elsewhere")
	assert.False(t, ok)
}

func TestMarkRemovedUnder(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{Name: "a", Files: map[string]string{"x": "x"}})
	for _, p := range []string{"/a", "/a/b", "/a-b", "/ab", "/b"} {
		f.load(t, "a", p, "x")
	}

	f.index.MarkRemovedUnder("/a")
	assert.Equal(t, []string{"/a", "/a/b"}, f.index.Removed())

	f.index.MarkRemovedUnder("/")
	assert.Len(t, f.index.Removed(), 5)
}

func TestCheckpointRollback(t *testing.T) {
	f := newFixture(t, testutil.PackageFixture{Name: "a", Files: map[string]string{"x": "x", "y": "y"}})
	f.load(t, "a", "/x", "x")
	f.index.MarkChecked("/x")

	cp := f.index.Checkpoint()
	f.load(t, "a", "/y", "y")
	f.index.Unload("a", "/x")
	f.index.Rollback(cp)

	assert.True(t, f.index.Has("a", "/x"))
	assert.False(t, f.index.Has("a", "/y"))
	assert.Equal(t, []string{"/x"}, f.index.RepositoryPaths())
	assert.Empty(t, f.index.Unchecked())
	assert.Empty(t, f.index.Removed())
}
