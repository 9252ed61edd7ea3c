package states

import (
	"slices"
	"sort"
)

// Graph is the dependency graph over kind names. Edges point from a
// prerequisite to its dependent.
type Graph struct {
	nodes         []string
	dependents    map[string][]string
	prerequisites map[string][]string
}

// BuildGraph adds an edge d -> k for every required or optional dependency d
// of every kind k in r. It has no side effects on r.
func BuildGraph(r *Registry) *Graph {
	g := &Graph{
		dependents:    make(map[string][]string, len(r.kinds)),
		prerequisites: make(map[string][]string, len(r.kinds)),
	}
	seen := make(map[string]struct{}, len(r.kinds))
	addNode := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		g.nodes = append(g.nodes, name)
	}

	for _, name := range r.Names() {
		kind := r.kinds[name]
		addNode(name)
		for _, dep := range kind.Dependencies() {
			addNode(dep)
			g.addEdge(dep, name)
		}
	}

	sort.Strings(g.nodes)
	for _, edges := range g.dependents {
		sort.Strings(edges)
	}
	for _, edges := range g.prerequisites {
		sort.Strings(edges)
	}
	return g
}

func (g *Graph) addEdge(from, to string) {
	if slices.Contains(g.dependents[from], to) {
		return
	}
	g.dependents[from] = append(g.dependents[from], to)
	g.prerequisites[to] = append(g.prerequisites[to], from)
}

// Nodes returns every node in ascending order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

func (g *Graph) Len() int { return len(g.nodes) }

// Dependents returns the kinds that must be updated after name.
func (g *Graph) Dependents(name string) []string { return slices.Clone(g.dependents[name]) }

// Prerequisites returns the kinds that must be updated before name.
func (g *Graph) Prerequisites(name string) []string { return slices.Clone(g.prerequisites[name]) }

func (g *Graph) HasEdge(from, to string) bool {
	return slices.Contains(g.dependents[from], to)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.dependents {
		n += len(edges)
	}
	return n
}

// Equal reports whether both graphs have the same nodes and edges.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || !slices.Equal(g.nodes, other.nodes) {
		return false
	}
	for _, node := range g.nodes {
		if !slices.Equal(g.dependents[node], other.dependents[node]) {
			return false
		}
	}
	return true
}
