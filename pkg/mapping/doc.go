// Package mapping expands resource mappings into concrete filesystem entries
// and indexes them.
//
// A mapping pairs a repository path with path references. A reference is
// either relative to the owning package ("res/css"), or points into another
// package ("@vendor/theme:dist"). Prefixing the package with "?" makes the
// reference optional ("@?vendor/theme:dist"): it is dropped when the package
// is not installed.
//
// The Index keeps, per package and repository path, the entries a mapping
// expanded to, plus a reverse index from every expanded repository path to
// the packages contributing it. Two transient sets sit on top of it: paths
// still to be checked for conflicts, and paths whose store content was
// removed and may need to be restored from another package.
package mapping
