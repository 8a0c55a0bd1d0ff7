package packages

import (
	"github.com/arthur-debert/resman/pkg/registry"
	"github.com/arthur-debert/resman/pkg/types"
)

// Collection holds every package taking part in a resolution, the root last
type Collection struct {
	reg  *registry.Registry[*types.Package]
	root *types.RootPackage
}

// NewCollection registers installed in the given order followed by root.
// Duplicate names fail with ALREADY_EXISTS.
func NewCollection(root *types.RootPackage, installed ...*types.Package) (*Collection, error) {
	c := &Collection{reg: registry.New[*types.Package](), root: root}
	for _, pkg := range installed {
		if err := c.reg.Register(pkg.Name, pkg); err != nil {
			return nil, err
		}
	}
	if err := c.reg.Register(root.Name, &root.Package); err != nil {
		return nil, err
	}
	return c, nil
}

// Package implements mapping.PackageLookup
func (c *Collection) Package(name string) (*types.Package, bool) {
	return c.reg.Lookup(name)
}

// Get returns the named package
func (c *Collection) Get(name string) (*types.Package, error) {
	return c.reg.Get(name)
}

// Has reports whether name is part of the collection
func (c *Collection) Has(name string) bool {
	return c.reg.Has(name)
}

// Names lists the package names in collection order
func (c *Collection) Names() []string {
	return c.reg.Names()
}

// All lists the packages in collection order
func (c *Collection) All() []*types.Package {
	return c.reg.Items()
}

// Root returns the root package
func (c *Collection) Root() *types.RootPackage {
	return c.root
}

// Len returns the number of packages including the root
func (c *Collection) Len() int {
	return c.reg.Len()
}
