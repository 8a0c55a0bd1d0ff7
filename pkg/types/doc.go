// Package types defines the core types and interfaces used throughout resman.
// This includes the FS interface, packages and their resource mappings,
// repository resources and the ResourceConflict value.
package types
