package conflicts

import (
	"slices"

	"github.com/arthur-debert/resman/pkg/logging"
	"github.com/arthur-debert/resman/pkg/mapping"
	"github.com/arthur-debert/resman/pkg/overrides"
	"github.com/arthur-debert/resman/pkg/types"
	"github.com/rs/zerolog"
)

// Detector checks the unchecked paths of an index against an override graph
type Detector struct {
	index  *mapping.Index
	graph  *overrides.Graph
	logger zerolog.Logger
}

// NewDetector creates a Detector
func NewDetector(index *mapping.Index, graph *overrides.Graph) *Detector {
	return &Detector{
		index:  index,
		graph:  graph,
		logger: logging.GetLogger("conflicts"),
	}
}

// Detect returns the first conflict among the unchecked paths, or nil when
// every unchecked path has a single contributor or fully ordered ones.
// An override cycle between contributors is returned as an error.
func (d *Detector) Detect() (*types.ResourceConflict, error) {
	for _, path := range d.index.Unchecked() {
		conflict, err := d.check(path)
		if err != nil || conflict != nil {
			return conflict, err
		}
		d.index.MarkChecked(path)
	}
	return nil, nil
}

// FindAll reports every conflict among all indexed paths without touching
// the unchecked set
func (d *Detector) FindAll() ([]types.ResourceConflict, error) {
	var found []types.ResourceConflict
	for _, path := range d.index.RepositoryPaths() {
		conflict, err := d.check(path)
		if err != nil {
			return found, err
		}
		if conflict != nil {
			found = append(found, *conflict)
		}
	}
	return found, nil
}

func (d *Detector) check(path string) (*types.ResourceConflict, error) {
	contributors := d.index.Contributors(path)
	if len(contributors) < 2 {
		return nil, nil
	}

	d.inGraphOrder(contributors)
	ordered, err := d.graph.Sort(contributors...)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(ordered); i++ {
		if !d.graph.HasPath(ordered[i-1], ordered[i]) {
			conflict := types.NewResourceConflict(path, ordered[i-1], ordered[i])
			d.logger.Debug().
				Str("path", path).
				Str("package1", conflict.Package1()).
				Str("package2", conflict.Package2()).
				Msg("Conflict detected")
			return &conflict, nil
		}
	}
	return nil, nil
}

// inGraphOrder sorts names by graph insertion order so that ties in the
// override order break the same way everywhere
func (d *Detector) inGraphOrder(names []string) {
	position := make(map[string]int)
	for i, n := range d.graph.Nodes() {
		position[n] = i
	}
	slices.SortStableFunc(names, func(a, b string) int {
		return position[a] - position[b]
	})
}
