package types

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// ResourceMapping maps one repository path to an ordered list of path
// references. Later references override earlier ones.
type ResourceMapping struct {
	RepositoryPath string
	PathReferences []string
}

// NewResourceMapping validates and normalizes a mapping
func NewResourceMapping(repositoryPath string, references ...string) (ResourceMapping, error) {
	clean, err := CleanRepositoryPath(repositoryPath)
	if err != nil {
		return ResourceMapping{}, err
	}
	if len(references) == 0 {
		return ResourceMapping{}, fmt.Errorf("mapping for %s has no path references", clean)
	}
	for _, ref := range references {
		if strings.TrimSpace(ref) == "" {
			return ResourceMapping{}, fmt.Errorf("mapping for %s has an empty path reference", clean)
		}
	}
	return ResourceMapping{
		RepositoryPath: clean,
		PathReferences: slices.Clone(references),
	}, nil
}

// Clone returns a copy that does not share the reference slice
func (m ResourceMapping) Clone() ResourceMapping {
	return ResourceMapping{
		RepositoryPath: m.RepositoryPath,
		PathReferences: slices.Clone(m.PathReferences),
	}
}

// String renders the mapping as "path -> ref, ref"
func (m ResourceMapping) String() string {
	return m.RepositoryPath + " -> " + strings.Join(m.PathReferences, ", ")
}

// CleanRepositoryPath normalizes an absolute slash-separated repository path
func CleanRepositoryPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("repository path must not be empty")
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("repository path %q must be absolute", p)
	}
	if strings.Contains(p, "\\") {
		return "", fmt.Errorf("repository path %q must use forward slashes", p)
	}
	return path.Clean(p), nil
}

// IsRepositoryPathUnder reports whether p equals base or is nested below it
func IsRepositoryPathUnder(p, base string) bool {
	if base == "/" || p == base {
		return true
	}
	return strings.HasPrefix(p, base+"/")
}
