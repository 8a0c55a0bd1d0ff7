package repository

import (
	"fmt"
	"testing"

	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/packages"
	"github.com/arthur-debert/resman/pkg/store"
	"github.com/arthur-debert/resman/pkg/testutil"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/stretchr/testify/require"
)

// events records store mutations and manifest saves in call order
type events []string

type recordingStore struct {
	*store.Memory
	log *events
}

func (s *recordingStore) Add(p string, r types.Resource) error {
	*s.log = append(*s.log, "add "+p)
	return s.Memory.Add(p, r)
}

func (s *recordingStore) Remove(p string) error {
	*s.log = append(*s.log, "remove "+p)
	return s.Memory.Remove(p)
}

func (s *recordingStore) Clear() error {
	*s.log = append(*s.log, "clear")
	return s.Memory.Clear()
}

type recordingWriter struct {
	log   *events
	saved []*types.RootPackage
	err   error
}

func (w *recordingWriter) SaveRootPackage(root *types.RootPackage) error {
	if w.err != nil {
		return w.err
	}
	*w.log = append(*w.log, "save")
	w.saved = append(w.saved, root.Clone())
	return nil
}

func (w *recordingWriter) last() *types.RootPackage {
	if len(w.saved) == 0 {
		return nil
	}
	return w.saved[len(w.saved)-1]
}

type env struct {
	fs        types.FS
	root      *types.RootPackage
	packages  *packages.Collection
	store     *recordingStore
	manifests *recordingWriter
	log       events
}

// setup lays out the packages on a memory filesystem
func setup(t *testing.T, root testutil.PackageFixture, overrideOrder []string, installed ...testutil.PackageFixture) *env {
	t.Helper()

	e := &env{fs: filesystem.NewMemoryFS()}
	e.store = &recordingStore{Memory: store.NewMemory(), log: &e.log}
	e.manifests = &recordingWriter{log: &e.log}

	if root.Name == "" {
		root.Name = "project"
	}
	e.root = testutil.CreateRootPackage(t, e.fs, root, overrideOrder...)

	var pkgs []*types.Package
	for _, fixture := range installed {
		pkg := testutil.CreatePackage(t, e.fs, fixture)
		e.root.InstalledPackages = append(e.root.InstalledPackages, types.InstallInfo{
			Name:        pkg.Name,
			InstallPath: pkg.InstallPath,
		})
		pkgs = append(pkgs, pkg)
	}

	collection, err := packages.NewCollection(e.root, pkgs...)
	require.NoError(t, err)
	e.packages = collection
	return e
}

func (e *env) manager(opts ...Option) (*Manager, error) {
	opts = append([]Option{WithFS(e.fs)}, opts...)
	return NewManager(e.root, e.packages, e.store, e.manifests, opts...)
}

func (e *env) mustManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := e.manager(opts...)
	require.NoError(t, err)
	return m
}

// source returns the filesystem path stored at p
func (e *env) source(t *testing.T, p string) string {
	t.Helper()
	r, ok := e.store.Get(p)
	require.True(t, ok, "store has nothing at %s", p)
	return r.SourcePath
}

func (e *env) content(t *testing.T, p string) string {
	t.Helper()
	data, err := e.fs.ReadFile(e.source(t, p))
	require.NoError(t, err)
	return string(data)
}

// files builds fixture files whose content names the owner, so tests can
// tell sources apart
func files(owner string, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		if n[len(n)-1] == '/' {
			out[n] = ""
			continue
		}
		out[n] = fmt.Sprintf("%s:%s", owner, n)
	}
	return out
}
