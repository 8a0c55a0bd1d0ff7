package overrides

import (
	"slices"
	"strings"

	"github.com/arthur-debert/resman/pkg/errors"
)

// Graph is a directed graph over package names
type Graph struct {
	// nodes in insertion order, which is also the tie-break order of Sort
	nodes   []string
	nodeSet map[string]bool
	// edges maps a package to the packages overriding it, in insertion order
	edges map[string][]string
}

// New creates an empty Graph
func New() *Graph {
	return &Graph{
		nodeSet: make(map[string]bool),
		edges:   make(map[string][]string),
	}
}

// AddNode adds a package name. Adding an existing name is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// HasNode reports whether name was added
func (g *Graph) HasNode(name string) bool {
	return g.nodeSet[name]
}

// Nodes returns all package names in insertion order
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

// AddEdge records that "to" overrides "from". Both nodes must exist.
func (g *Graph) AddEdge(from, to string) error {
	for _, name := range []string{from, to} {
		if !g.nodeSet[name] {
			return errors.Newf(errors.ErrUnknownNode, "package %q is not part of the override graph", name).
				WithDetail("package", name)
		}
	}
	if g.HasEdge(from, to) {
		return nil
	}
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// RemoveEdge deletes the edge from -> to if present
func (g *Graph) RemoveEdge(from, to string) {
	g.edges[from] = slices.DeleteFunc(g.edges[from], func(n string) bool { return n == to })
	if len(g.edges[from]) == 0 {
		delete(g.edges, from)
	}
}

// HasEdge reports whether "to" directly overrides "from"
func (g *Graph) HasEdge(from, to string) bool {
	return slices.Contains(g.edges[from], to)
}

// Edges returns the packages directly overriding from
func (g *Graph) Edges(from string) []string {
	return slices.Clone(g.edges[from])
}

// HasPath reports whether "to" overrides "from" directly or through a chain
// of overrides.
func (g *Graph) HasPath(from, to string) bool {
	return g.reachable(from)[to]
}

// reachable returns every node reachable from start through at least one edge
func (g *Graph) reachable(start string) map[string]bool {
	seen := make(map[string]bool)
	stack := slices.Clone(g.edges[start])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, g.edges[n]...)
	}
	return seen
}

// TopoSort is Sort without the cycle report
func (g *Graph) TopoSort(names ...string) []string {
	order, _ := g.Sort(names...)
	return order
}

// Sort orders names (all nodes when empty) so that for every pair where one
// package overrides the other, directly or transitively, the overridden
// package comes first. Unrelated packages keep their input order.
//
// Names unknown to the graph fail with UNKNOWN_NODE. When a cycle prevents a
// total order, the returned slice still holds every name: the placeable ones
// first, then the rest in input order, along with an OVERRIDE_CYCLE error.
func (g *Graph) Sort(names ...string) ([]string, error) {
	if len(names) == 0 {
		names = g.nodes
	}

	members := make([]string, 0, len(names))
	index := make(map[string]int, len(names))
	for _, name := range names {
		if !g.nodeSet[name] {
			return nil, errors.Newf(errors.ErrUnknownNode, "package %q is not part of the override graph", name).
				WithDetail("package", name)
		}
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(members)
		members = append(members, name)
	}

	// successors[i] holds members that must come after members[i]
	successors := make([][]int, len(members))
	inDegree := make([]int, len(members))
	for i, name := range members {
		reach := g.reachable(name)
		for j, other := range members {
			if i != j && reach[other] {
				successors[i] = append(successors[i], j)
				inDegree[j]++
			}
		}
	}

	placed := make([]bool, len(members))
	order := make([]string, 0, len(members))
	for {
		next := -1
		for i := range members {
			if !placed[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		placed[next] = true
		order = append(order, members[next])
		for _, j := range successors[next] {
			inDegree[j]--
		}
	}

	if len(order) == len(members) {
		return order, nil
	}

	var stuck []string
	for i, name := range members {
		if !placed[i] {
			stuck = append(stuck, name)
		}
	}
	order = append(order, stuck...)

	return order, errors.Newf(errors.ErrOverrideCycle,
		"packages override each other in a cycle: %s", strings.Join(stuck, ", ")).
		WithDetail("packages", stuck)
}
