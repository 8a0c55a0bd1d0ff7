// Package testutil builds package trees and manifests for tests.
//
// Fixtures are laid out on a types.FS, usually an afero memory filesystem,
// and converted into domain packages:
//
//	fs := filesystem.NewMemoryFS()
//	pkg := testutil.CreatePackage(t, fs, testutil.PackageFixture{
//		Name:        "vendor/a",
//		InstallPath: "/vendor/a",
//		Files:       map[string]string{"app.conf": "a"},
//		Mappings:    map[string][]string{"/etc/app.conf": {"app.conf"}},
//	})
package testutil
