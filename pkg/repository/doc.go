// Package repository resolves the resource mappings of a set of packages and
// materializes them into a store.
//
// A Manager is built from a package collection. Construction loads every
// mapping into a mapping index, every declared override into an override
// graph and fails when two packages map the same repository path without an
// override between them. The root package's mappings can then be added and
// removed one at a time: conflicts between the root and another package are
// resolved by letting the root override it, and the manifest is saved
// before the store is touched.
//
// A Builder replays the resolved mappings into a store in override order, so
// that the entries of overriding packages are written last.
package repository
