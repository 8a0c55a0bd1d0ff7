package types

import "fmt"

// ResourceConflict names a repository path mapped by two packages whose
// relative order is undetermined
type ResourceConflict struct {
	path     string
	package1 string
	package2 string
}

// NewResourceConflict creates a conflict value
func NewResourceConflict(path, package1, package2 string) ResourceConflict {
	return ResourceConflict{path: path, package1: package1, package2: package2}
}

func (c ResourceConflict) Path() string     { return c.path }
func (c ResourceConflict) Package1() string { return c.package1 }
func (c ResourceConflict) Package2() string { return c.package2 }

// Involves reports whether name is one of the conflicting packages
func (c ResourceConflict) Involves(name string) bool {
	return c.package1 == name || c.package2 == name
}

// OtherPackage returns the package opposing name. It returns "" when name
// is not involved.
func (c ResourceConflict) OtherPackage(name string) string {
	switch name {
	case c.package1:
		return c.package2
	case c.package2:
		return c.package1
	}
	return ""
}

func (c ResourceConflict) String() string {
	return fmt.Sprintf("%s: %s <> %s", c.path, c.package1, c.package2)
}
