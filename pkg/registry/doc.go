// Package registry provides a generic, name-keyed collection that remembers
// registration order. Package collections are built on it so that ordering
// ties between packages resolve the same way on every run.
package registry
