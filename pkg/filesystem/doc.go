// Package filesystem provides the types.FS implementations resman runs on.
//
// Both are afero filesystems: NewOS wraps afero.NewOsFs and NewMemoryFS
// wraps afero.NewMemMapFs, which tests use to build package trees in
// memory. NewAferoFS adapts any other afero.Fs.
package filesystem
