package repository

import (
	"github.com/arthur-debert/resman/pkg/errors"
	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/mapping"
	"github.com/arthur-debert/resman/pkg/overrides"
	"github.com/arthur-debert/resman/pkg/store"
	"github.com/rs/zerolog"
)

// Builder writes the entries of a mapping index into a store
type Builder struct {
	index  *mapping.Index
	graph  *overrides.Graph
	store  store.Store
	logger zerolog.Logger
}

// NewBuilder creates a Builder
func NewBuilder(index *mapping.Index, graph *overrides.Graph, s store.Store) *Builder {
	return &Builder{
		index:  index,
		graph:  graph,
		store:  s,
		logger: logging.GetLogger("repository.builder"),
	}
}

// Build empties the store and replays every package's mappings in override
// order. Running it twice yields the same store content.
func (b *Builder) Build() error {
	defer logging.Timed(b.logger, "build")()

	order, err := b.graph.Sort()
	if err != nil {
		return err
	}

	nonEmpty, err := b.store.HasChildren("/")
	if err != nil {
		return storeError(err, "cannot inspect store", "/")
	}
	if nonEmpty {
		b.logger.Debug().Msg("Clearing store before rebuild")
		if err := b.store.Clear(); err != nil {
			return storeError(err, "cannot clear store", "/")
		}
	}

	count := 0
	for _, name := range order {
		for _, m := range b.index.Mappings(name) {
			for _, e := range b.index.Entries(name, m.RepositoryPath) {
				if err := b.store.Add(e.RepositoryPath, e.Resource()); err != nil {
					return storeError(err, "cannot add resource", e.RepositoryPath).
						WithDetail("package", name)
				}
				count++
			}
		}
	}

	for _, p := range b.index.Removed() {
		b.index.ClearRemoved(p)
	}

	b.logger.Info().Int("packages", len(order)).Int("entries", count).Msg("Repository built")
	return nil
}

// RestoreOverriddenPaths re-adds every path marked removed from the
// highest-priority package still providing it. Paths nobody provides any
// more are only unmarked.
func (b *Builder) RestoreOverriddenPaths() error {
	removed := b.index.Removed()
	if len(removed) == 0 {
		return nil
	}

	order, err := b.graph.Sort()
	if err != nil {
		return err
	}

	for _, p := range removed {
		for i := len(order) - 1; i >= 0; i-- {
			e, ok := b.index.Owns(order[i], p)
			if !ok {
				continue
			}
			if err := b.store.Add(p, e.Resource()); err != nil {
				return storeError(err, "cannot restore resource", p).
					WithDetail("package", order[i])
			}
			b.logger.Debug().Str("path", p).Str("package", order[i]).Msg("Restored path")
			break
		}
		b.index.ClearRemoved(p)
	}
	return nil
}

func storeError(err error, msg, path string) *errors.Error {
	if e, ok := err.(*errors.Error); ok && e.Code == errors.ErrStore {
		return e
	}
	return errors.Wrap(err, errors.ErrStore, msg).WithDetail("path", path)
}
