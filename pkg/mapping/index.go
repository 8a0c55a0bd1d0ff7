package mapping

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/rs/zerolog"
)

type record struct {
	mapping types.ResourceMapping
	entries []Entry
}

// Index holds the expanded mappings of every package
type Index struct {
	fs     types.FS
	lookup PackageLookup
	logger zerolog.Logger

	// records[package][repositoryPath] is the expansion of one mapping
	records map[string]map[string]*record
	// contributors[repositoryPath] is the set of packages providing an entry
	contributors map[string]map[string]bool

	unchecked map[string]bool
	removed   map[string]bool
}

// NewIndex creates an empty index reading package trees from fs
func NewIndex(fs types.FS, lookup PackageLookup) *Index {
	return &Index{
		fs:           fs,
		lookup:       lookup,
		logger:       logging.GetLogger("mapping.index"),
		records:      make(map[string]map[string]*record),
		contributors: make(map[string]map[string]bool),
		unchecked:    make(map[string]bool),
		removed:      make(map[string]bool),
	}
}

// Expand resolves the mapping's references on behalf of pkg without
// touching the index
func (ix *Index) Expand(pkg *types.Package, m types.ResourceMapping) ([]Entry, error) {
	var entries []Entry
	for _, raw := range m.PathReferences {
		ref, err := ParseReference(raw)
		if err != nil {
			return nil, err
		}
		fsPath, ok, err := ref.Resolve(pkg, ix.lookup)
		if err != nil {
			return nil, err
		}
		if !ok {
			ix.logger.Debug().
				Str("package", pkg.Name).
				Str("reference", raw).
				Msg("Skipping optional reference to missing package")
			continue
		}
		expanded, err := expand(ix.fs, fsPath, m.RepositoryPath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, expanded...)
	}
	return entries, nil
}

// Load expands the mapping and records it for pkg, replacing an earlier
// mapping of pkg at the same repository path. Every expanded repository
// path is marked unchecked. On error the index is left untouched.
func (ix *Index) Load(pkg *types.Package, m types.ResourceMapping) ([]Entry, error) {
	entries, err := ix.Expand(pkg, m)
	if err != nil {
		return nil, err
	}

	if _, exists := ix.records[pkg.Name][m.RepositoryPath]; exists {
		ix.Unload(pkg.Name, m.RepositoryPath)
	}

	if ix.records[pkg.Name] == nil {
		ix.records[pkg.Name] = make(map[string]*record)
	}
	ix.records[pkg.Name][m.RepositoryPath] = &record{mapping: m.Clone(), entries: entries}

	for _, e := range entries {
		if ix.contributors[e.RepositoryPath] == nil {
			ix.contributors[e.RepositoryPath] = make(map[string]bool)
		}
		ix.contributors[e.RepositoryPath][pkg.Name] = true
		ix.unchecked[e.RepositoryPath] = true
	}

	ix.logger.Trace().
		Str("package", pkg.Name).
		Str("repositoryPath", m.RepositoryPath).
		Int("entries", len(entries)).
		Msg("Loaded mapping")

	return entries, nil
}

// Unload drops the mapping of packageName at repositoryPath. Repository
// paths no other mapping of the package covers lose the package as a
// contributor; all of them are marked removed so that a store can be
// repaired with what remains.
func (ix *Index) Unload(packageName, repositoryPath string) ([]Entry, bool) {
	rec, ok := ix.records[packageName][repositoryPath]
	if !ok {
		return nil, false
	}
	delete(ix.records[packageName], repositoryPath)
	if len(ix.records[packageName]) == 0 {
		delete(ix.records, packageName)
	}

	for _, e := range rec.entries {
		if _, still := ix.Owns(packageName, e.RepositoryPath); !still {
			delete(ix.contributors[e.RepositoryPath], packageName)
			if len(ix.contributors[e.RepositoryPath]) == 0 {
				delete(ix.contributors, e.RepositoryPath)
			}
		}
		ix.removed[e.RepositoryPath] = true
	}

	ix.logger.Trace().
		Str("package", packageName).
		Str("repositoryPath", repositoryPath).
		Msg("Unloaded mapping")

	return rec.entries, true
}

// MarkRemovedUnder marks every indexed repository path at or below base
// as removed
func (ix *Index) MarkRemovedUnder(base string) {
	paths := ix.RepositoryPaths()
	for i := sort.SearchStrings(paths, base); i < len(paths) && strings.HasPrefix(paths[i], base); i++ {
		if types.IsRepositoryPathUnder(paths[i], base) {
			ix.removed[paths[i]] = true
		}
	}
}

// Has reports whether packageName maps repositoryPath
func (ix *Index) Has(packageName, repositoryPath string) bool {
	_, ok := ix.records[packageName][repositoryPath]
	return ok
}

// Mappings returns the mappings of a package sorted by repository path, so
// that ancestors come before their descendants
func (ix *Index) Mappings(packageName string) []types.ResourceMapping {
	keys := slices.Sorted(maps.Keys(ix.records[packageName]))
	mappings := make([]types.ResourceMapping, 0, len(keys))
	for _, k := range keys {
		mappings = append(mappings, ix.records[packageName][k].mapping.Clone())
	}
	return mappings
}

// Entries returns the expansion of one mapping
func (ix *Index) Entries(packageName, repositoryPath string) []Entry {
	rec, ok := ix.records[packageName][repositoryPath]
	if !ok {
		return nil
	}
	return slices.Clone(rec.entries)
}

// Owns returns the entry packageName provides for repositoryPath. Mappings
// are consulted in repository path order and later entries win, matching
// the order in which a build replays them.
func (ix *Index) Owns(packageName, repositoryPath string) (Entry, bool) {
	var (
		found Entry
		ok    bool
	)
	for _, k := range slices.Sorted(maps.Keys(ix.records[packageName])) {
		if !types.IsRepositoryPathUnder(repositoryPath, k) {
			continue
		}
		for _, e := range ix.records[packageName][k].entries {
			if e.RepositoryPath == repositoryPath {
				found, ok = e, true
			}
		}
	}
	return found, ok
}

// Contributors returns the packages providing repositoryPath, sorted by name
func (ix *Index) Contributors(repositoryPath string) []string {
	return slices.Sorted(maps.Keys(ix.contributors[repositoryPath]))
}

// RepositoryPaths returns every indexed repository path, sorted
func (ix *Index) RepositoryPaths() []string {
	return slices.Sorted(maps.Keys(ix.contributors))
}

// Unchecked returns the repository paths awaiting conflict detection, sorted
func (ix *Index) Unchecked() []string {
	return slices.Sorted(maps.Keys(ix.unchecked))
}

// MarkChecked removes repositoryPath from the unchecked set
func (ix *Index) MarkChecked(repositoryPath string) {
	delete(ix.unchecked, repositoryPath)
}

// Removed returns the repository paths pending restoration, sorted
func (ix *Index) Removed() []string {
	return slices.Sorted(maps.Keys(ix.removed))
}

// ClearRemoved drops repositoryPath from the removed set
func (ix *Index) ClearRemoved(repositoryPath string) {
	delete(ix.removed, repositoryPath)
}

// Checkpoint captures the index so a failed mutation can be undone
func (ix *Index) Checkpoint() *Checkpoint {
	cp := &Checkpoint{
		records:      make(map[string]map[string]*record, len(ix.records)),
		contributors: make(map[string]map[string]bool, len(ix.contributors)),
		unchecked:    maps.Clone(ix.unchecked),
		removed:      maps.Clone(ix.removed),
	}
	for pkg, recs := range ix.records {
		cp.records[pkg] = maps.Clone(recs)
	}
	for p, set := range ix.contributors {
		cp.contributors[p] = maps.Clone(set)
	}
	return cp
}

// Rollback restores the index to a checkpoint
func (ix *Index) Rollback(cp *Checkpoint) {
	ix.records = cp.records
	ix.contributors = cp.contributors
	ix.unchecked = cp.unchecked
	ix.removed = cp.removed
}

// Checkpoint is an opaque copy of the index state
type Checkpoint struct {
	records      map[string]map[string]*record
	contributors map[string]map[string]bool
	unchecked    map[string]bool
	removed      map[string]bool
}
