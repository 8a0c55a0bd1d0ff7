package store

import (
	"maps"
	"path"
	"slices"

	"github.com/arthur-debert/resman/pkg/types"
)

// Memory is an in-memory Store
type Memory struct {
	resources map[string]types.Resource
}

// NewMemory creates an empty memory store
func NewMemory() *Memory {
	return &Memory{resources: make(map[string]types.Resource)}
}

func (m *Memory) HasChildren(p string) (bool, error) {
	for stored := range m.resources {
		if stored != p && types.IsRepositoryPathUnder(stored, p) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Add(p string, resource types.Resource) error {
	m.resources[p] = resource
	return nil
}

func (m *Memory) Remove(p string) error {
	for stored := range m.resources {
		if types.IsRepositoryPathUnder(stored, p) {
			delete(m.resources, stored)
		}
	}
	return nil
}

func (m *Memory) Clear() error {
	clear(m.resources)
	return nil
}

// Get returns the resource stored at p
func (m *Memory) Get(p string) (types.Resource, bool) {
	r, ok := m.resources[p]
	return r, ok
}

// Children returns the direct children of p, sorted
func (m *Memory) Children(p string) []string {
	var children []string
	for stored := range m.resources {
		if stored != p && stored != "/" && path.Dir(stored) == p {
			children = append(children, stored)
		}
	}
	slices.Sort(children)
	return children
}

// Paths returns every stored path, sorted
func (m *Memory) Paths() []string {
	return slices.Sorted(maps.Keys(m.resources))
}

// Snapshot returns a copy of the stored tree
func (m *Memory) Snapshot() map[string]types.Resource {
	return maps.Clone(m.resources)
}
