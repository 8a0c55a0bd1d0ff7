package registry

import (
	"sync"

	"github.com/arthur-debert/resman/pkg/errors"
)

// Registry is a name-keyed set of items that iterates in registration order
type Registry[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	// position of each name in entries
	byName map[string]int
}

type entry[T any] struct {
	name string
	item T
}

// New creates an empty Registry
func New[T any]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]int)}
}

// Register appends item under name. Names must be non-empty and unique.
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%q is already registered", name).
			WithDetail("name", name)
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry[T]{name: name, item: item})
	return nil
}

// Lookup returns the item registered under name
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	return r.entries[i].item, true
}

// Get is Lookup failing with NOT_FOUND
func (r *Registry[T]) Get(name string) (T, error) {
	item, ok := r.Lookup(name)
	if !ok {
		return item, errors.Newf(errors.ErrNotFound, "%q is not registered", name).
			WithDetail("name", name)
	}
	return item, nil
}

func (r *Registry[T]) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered names in registration order
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

// Items returns the registered items in registration order
func (r *Registry[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]T, len(r.entries))
	for i, e := range r.entries {
		items[i] = e.item
	}
	return items
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
