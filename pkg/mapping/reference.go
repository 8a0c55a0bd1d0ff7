package mapping

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/types"
)

// PackageLookup finds installed packages by name
type PackageLookup interface {
	Package(name string) (*types.Package, bool)
}

// Reference is a parsed path reference
type Reference struct {
	// Package is the referenced package, empty for references local to the owner
	Package string
	// Path is the slash-separated path inside the package
	Path string
	// Optional references to missing packages resolve to nothing
	Optional bool
	// Raw is the reference as written in the manifest
	Raw string
}

// ParseReference parses "rel/path", "@pkg:path" or "@?pkg:path"
func ParseReference(raw string) (Reference, error) {
	ref := Reference{Raw: raw}
	rest := strings.TrimSpace(raw)

	if strings.HasPrefix(rest, "@") {
		rest = strings.TrimPrefix(rest, "@")
		if strings.HasPrefix(rest, "?") {
			ref.Optional = true
			rest = strings.TrimPrefix(rest, "?")
		}
		name, sub, found := strings.Cut(rest, ":")
		if !found {
			return Reference{}, definitionError(raw, "package references need the form @package:path")
		}
		if name == "" {
			return Reference{}, definitionError(raw, "package name is empty")
		}
		ref.Package = name
		rest = sub
	}

	if rest == "" {
		rest = "."
	}
	if strings.HasPrefix(rest, "/") || filepath.IsAbs(rest) {
		return Reference{}, definitionError(raw, "path must be relative to the package")
	}
	clean := path.Clean(filepath.ToSlash(rest))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return Reference{}, definitionError(raw, "path escapes the package")
	}
	ref.Path = clean

	return ref, nil
}

// Resolve returns the absolute filesystem path the reference points to.
// ok is false when an optional reference names a package that is not installed.
func (r Reference) Resolve(owner *types.Package, lookup PackageLookup) (string, bool, error) {
	target := owner
	if r.Package != "" && r.Package != owner.Name {
		pkg, found := lookup.Package(r.Package)
		if !found {
			if r.Optional {
				return "", false, nil
			}
			return "", false, errors.Newf(errors.ErrUnknownPackage,
				"package %q referenced by %q is not installed", r.Package, r.Raw).
				WithDetail("package", r.Package).
				WithDetail("reference", r.Raw).
				WithDetail("owner", owner.Name)
		}
		target = pkg
	}
	return target.GetFilePath(r.Path), true, nil
}

func definitionError(raw, reason string) *errors.Error {
	return errors.Newf(errors.ErrResourceDefinition, "invalid path reference %q: %s", raw, reason).
		WithDetail("reference", raw)
}
