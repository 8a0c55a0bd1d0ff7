package repository

import (
	"github.com/arthur-debert/resman/pkg/conflicts"
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/filesystem"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/mapping"
	"github.com/arthur-debert/resman/pkg/overrides"
	"github.com/arthur-debert/resman/pkg/packages"
	"github.com/arthur-debert/resman/pkg/store"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/rs/zerolog"
)

// ManifestWriter persists the root package
type ManifestWriter interface {
	SaveRootPackage(root *types.RootPackage) error
}

// Manager owns the resolved mappings of a package collection
type Manager struct {
	root      *types.RootPackage
	packages  *packages.Collection
	store     store.Store
	manifests ManifestWriter

	fs            types.FS
	skipConflicts bool

	index    *mapping.Index
	graph    *overrides.Graph
	detector *conflicts.Detector
	builder  *Builder
	logger   zerolog.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithFS sets the filesystem package trees are read from. Defaults to the
// OS filesystem.
func WithFS(fs types.FS) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithoutConflictCheck lets NewManager succeed while conflicts exist so
// that they can be listed with FindConflicts
func WithoutConflictCheck() Option {
	return func(m *Manager) {
		m.skipConflicts = true
	}
}

// PackageMapping is a mapping together with the package declaring it
type PackageMapping struct {
	Package string
	Mapping types.ResourceMapping
}

// NewManager loads every package of the collection and fails with
// RESOURCE_CONFLICT when two of them map a path without one overriding the
// other.
func NewManager(root *types.RootPackage, pkgs *packages.Collection, s store.Store, manifests ManifestWriter, opts ...Option) (*Manager, error) {
	m := &Manager{
		root:      root,
		packages:  pkgs,
		store:     s,
		manifests: manifests,
		fs:        filesystem.NewOS(),
		graph:     overrides.New(),
		logger:    logging.GetLogger("repository"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if root == nil || pkgs == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a root package and a package collection are required")
	}
	if lookedUp, ok := pkgs.Package(root.Name); !ok || lookedUp != &root.Package {
		return nil, errors.Newf(errors.ErrInvalidInput, "root package %q is not part of the collection", root.Name).
			WithDetail("package", root.Name)
	}

	m.index = mapping.NewIndex(m.fs, pkgs)
	m.detector = conflicts.NewDetector(m.index, m.graph)
	m.builder = NewBuilder(m.index, m.graph, s)

	if err := m.loadGraph(); err != nil {
		return nil, err
	}
	if err := m.loadMappings(); err != nil {
		return nil, err
	}

	if !m.skipConflicts {
		conflict, err := m.detector.Detect()
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, conflictError(conflict)
		}
	}

	m.logger.Debug().
		Int("packages", pkgs.Len()).
		Int("paths", len(m.index.RepositoryPaths())).
		Msg("Resolver ready")
	return m, nil
}

func (m *Manager) loadGraph() error {
	for _, name := range m.packages.Names() {
		m.graph.AddNode(name)
	}

	for _, pkg := range m.packages.All() {
		for _, overridden := range pkg.OverriddenPackages {
			if !m.graph.HasNode(overridden) {
				m.logger.Debug().
					Str("package", pkg.Name).
					Str("overridden", overridden).
					Msg("Ignoring override of a package that is not installed")
				continue
			}
			if err := m.graph.AddEdge(overridden, pkg.Name); err != nil {
				return err
			}
		}
	}

	var previous string
	for _, name := range m.root.OverrideOrder {
		if !m.graph.HasNode(name) {
			m.logger.Debug().Str("package", name).Msg("Ignoring unknown package in override order")
			continue
		}
		if previous != "" && previous != name {
			if err := m.graph.AddEdge(previous, name); err != nil {
				return err
			}
		}
		previous = name
	}
	return nil
}

func (m *Manager) loadMappings() error {
	for _, pkg := range m.packages.All() {
		for _, rm := range pkg.Mappings {
			if _, err := m.index.Load(pkg, rm); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), "cannot load mapping %s of package %q",
					rm.RepositoryPath, pkg.Name).
					WithDetail("package", pkg.Name).
					WithDetail("repositoryPath", rm.RepositoryPath)
			}
		}
	}
	return nil
}

// Root returns the root package
func (m *Manager) Root() *types.RootPackage {
	return m.root
}

// Builder returns the builder writing to the manager's store
func (m *Manager) Builder() *Builder {
	return m.builder
}

// Build rebuilds the store from scratch
func (m *Manager) Build() error {
	return m.builder.Build()
}

// AddResourceMapping adds rm to the root package, replacing an earlier
// mapping at the same repository path. Conflicts with other packages are
// resolved in favour of the root; conflicts the new mapping is not part of
// fail with RESOURCE_CONFLICT and leave everything unchanged.
func (m *Manager) AddResourceMapping(rm types.ResourceMapping) error {
	defer logging.Timed(m.logger, "add mapping")()

	clean, err := types.NewResourceMapping(rm.RepositoryPath, rm.PathReferences...)
	if err != nil {
		return errors.Wrap(err, errors.ErrResourceDefinition, "invalid resource mapping").
			WithDetail("repositoryPath", rm.RepositoryPath)
	}
	rm = clean
	rootName := m.root.Name

	checkpoint := m.index.Checkpoint()
	rootBefore := m.root.Clone()
	var inferred []string
	rollback := func() {
		m.index.Rollback(checkpoint)
		for _, loser := range inferred {
			m.graph.RemoveEdge(loser, rootName)
		}
		*m.root = *rootBefore
	}

	replaced := m.index.Has(rootName, rm.RepositoryPath)
	entries, err := m.index.Load(&m.root.Package, rm)
	if err != nil {
		return err
	}

	for {
		conflict, err := m.detector.Detect()
		if err != nil {
			rollback()
			return err
		}
		if conflict == nil {
			break
		}
		if !conflict.Involves(rootName) {
			rollback()
			return conflictError(conflict)
		}

		loser := conflict.OtherPackage(rootName)
		if err := m.graph.AddEdge(loser, rootName); err != nil {
			rollback()
			return err
		}
		inferred = append(inferred, loser)
		m.root.AddOverriddenPackage(loser)
		m.logger.Info().
			Str("path", conflict.Path()).
			Str("package", loser).
			Msg("Root package now overrides conflicting package")
	}

	m.root.SetMapping(rm)
	if err := m.manifests.SaveRootPackage(m.root); err != nil {
		rollback()
		return err
	}

	if replaced {
		if err := m.store.Remove(rm.RepositoryPath); err != nil {
			return storeError(err, "cannot remove replaced resource", rm.RepositoryPath)
		}
		m.index.MarkRemovedUnder(rm.RepositoryPath)
		return m.builder.RestoreOverriddenPaths()
	}

	for _, e := range entries {
		if m.winner(e.RepositoryPath) != rootName {
			continue
		}
		owned, _ := m.index.Owns(rootName, e.RepositoryPath)
		if err := m.store.Add(e.RepositoryPath, owned.Resource()); err != nil {
			return storeError(err, "cannot add resource", e.RepositoryPath)
		}
	}

	m.logger.Info().
		Str("path", rm.RepositoryPath).
		Int("entries", len(entries)).
		Msg("Mapping added")
	return nil
}

// RemoveResourceMapping drops the root mapping at repositoryPath and
// restores what other packages provide below it. Unmapped paths are
// ignored.
func (m *Manager) RemoveResourceMapping(repositoryPath string) error {
	defer logging.Timed(m.logger, "remove mapping")()

	path, err := types.CleanRepositoryPath(repositoryPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid repository path").
			WithDetail("repositoryPath", repositoryPath)
	}
	rootName := m.root.Name
	if !m.index.Has(rootName, path) {
		m.logger.Debug().Str("path", path).Msg("Root package does not map path, nothing to remove")
		return nil
	}

	checkpoint := m.index.Checkpoint()
	rootBefore := m.root.Clone()

	m.index.Unload(rootName, path)
	m.root.RemoveMapping(path)
	if err := m.manifests.SaveRootPackage(m.root); err != nil {
		m.index.Rollback(checkpoint)
		*m.root = *rootBefore
		return err
	}

	if err := m.store.Remove(path); err != nil {
		return storeError(err, "cannot remove resource", path)
	}
	m.index.MarkRemovedUnder(path)
	if err := m.builder.RestoreOverriddenPaths(); err != nil {
		return err
	}

	m.logger.Info().Str("path", path).Msg("Mapping removed")
	return nil
}

// winner returns the package whose entry a build leaves at path
func (m *Manager) winner(path string) string {
	contributors := m.index.Contributors(path)
	if len(contributors) == 0 {
		return ""
	}
	order := m.graph.TopoSort(contributors...)
	return order[len(order)-1]
}

// HasResourceMapping reports whether the root package maps repositoryPath
func (m *Manager) HasResourceMapping(repositoryPath string) bool {
	path, err := types.CleanRepositoryPath(repositoryPath)
	if err != nil {
		return false
	}
	_, ok := m.root.Mapping(path)
	return ok
}

// GetResourceMapping returns the root mapping at repositoryPath or fails
// with NO_SUCH_MAPPING
func (m *Manager) GetResourceMapping(repositoryPath string) (types.ResourceMapping, error) {
	path, err := types.CleanRepositoryPath(repositoryPath)
	if err != nil {
		return types.ResourceMapping{}, errors.NewNoSuchMappingError(repositoryPath)
	}
	rm, ok := m.root.Mapping(path)
	if !ok {
		return types.ResourceMapping{}, errors.NewNoSuchMappingError(path)
	}
	return rm.Clone(), nil
}

// RootResourceMappings returns the root mappings sorted by repository path
func (m *Manager) RootResourceMappings() []types.ResourceMapping {
	return m.index.Mappings(m.root.Name)
}

// GetResourceMappings returns the mappings of every package, packages in
// build order and each package's mappings by repository path
func (m *Manager) GetResourceMappings() ([]PackageMapping, error) {
	order, err := m.PackageOrder()
	if err != nil {
		return nil, err
	}
	var all []PackageMapping
	for _, name := range order {
		for _, rm := range m.index.Mappings(name) {
			all = append(all, PackageMapping{Package: name, Mapping: rm})
		}
	}
	return all, nil
}

// PackageOrder returns every package in build order, overridden packages
// before the packages overriding them
func (m *Manager) PackageOrder() ([]string, error) {
	return m.graph.Sort()
}

// Overrides returns the packages overriding name directly
func (m *Manager) Overrides(name string) []string {
	return m.graph.Edges(name)
}

// FindConflicts reports every unresolved conflict without changing state
func (m *Manager) FindConflicts() ([]types.ResourceConflict, error) {
	return m.detector.FindAll()
}

// Entries returns what the root mapping at repositoryPath expands to
func (m *Manager) Entries(repositoryPath string) []mapping.Entry {
	return m.index.Entries(m.root.Name, repositoryPath)
}

func conflictError(c *types.ResourceConflict) *errors.Error {
	return errors.NewConflictError(c.Path(), c.Package1(), c.Package2())
}
