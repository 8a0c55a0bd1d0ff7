// Package store provides the repository stores resman materializes
// resources into.
//
// A Store is deliberately narrow: add a resource at a repository path,
// remove a path with everything below it, clear everything, and ask whether
// a path has children. Add is an unconditional upsert of one node; the
// repository builder adds a directory's children itself.
//
// Memory keeps the tree in a map and is what tests inspect. Filesystem
// writes the tree below a target directory, copying files or linking them.
package store
