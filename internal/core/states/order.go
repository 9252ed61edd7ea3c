package states

import (
	"slices"

	"github.com/zeusync/statesched/pkg/sequence"
)

// Order is the global update sequence: every prerequisite precedes its dependents.
type Order []string

// ComputeOrder runs Kahn's algorithm over g, always releasing the lexically
// smallest ready node, so an identical graph always yields an identical order.
// If nodes remain that never become ready, the shortest cycle among them is
// reported as a *CyclicDependencyError.
func ComputeOrder(g *Graph) (Order, error) {
	inDegree := make(map[string]int, len(g.nodes))
	ready := sequence.NewMinQueue[string]()
	for _, node := range g.nodes {
		inDegree[node] = len(g.prerequisites[node])
		if inDegree[node] == 0 {
			ready.Enqueue(node)
		}
	}

	order := make(Order, 0, len(g.nodes))
	for !ready.IsEmpty() {
		node, _ := ready.Dequeue()
		order = append(order, node)
		for _, dependent := range g.dependents[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready.Enqueue(dependent)
			}
		}
	}

	if len(order) == len(g.nodes) {
		return order, nil
	}

	remaining := make(map[string]struct{}, len(g.nodes)-len(order))
	for _, node := range g.nodes {
		if inDegree[node] > 0 {
			remaining[node] = struct{}{}
		}
	}
	return nil, &CyclicDependencyError{Cycle: shortestCycle(g, remaining)}
}

// shortestCycle searches breadth-first from every remaining node, in ascending
// order, for the shortest path back to itself. Ties keep the earliest start, so
// the returned cycle begins at its smallest member.
func shortestCycle(g *Graph, remaining map[string]struct{}) []string {
	starts := sequence.Keys(remaining).Collect()

	var best []string
	for _, start := range starts {
		cycle := cycleThrough(g, start, remaining)
		if cycle != nil && (best == nil || len(cycle) < len(best)) {
			best = cycle
		}
	}
	return best
}

func cycleThrough(g *Graph, start string, remaining map[string]struct{}) []string {
	parent := map[string]string{start: ""}
	queue := []string{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range g.dependents[node] {
			if _, ok := remaining[next]; !ok {
				continue
			}
			if next == start {
				var path []string
				for cur := node; ; cur = parent[cur] {
					path = append(path, cur)
					if cur == start {
						break
					}
				}
				slices.Reverse(path)
				return path
			}
			if _, visited := parent[next]; visited {
				continue
			}
			parent[next] = node
			queue = append(queue, next)
		}
	}
	return nil
}

// Index returns the position of name, or -1.
func (o Order) Index(name string) int {
	return slices.Index(o, name)
}

// Restrict returns the subsequence of o whose kinds are instantiated on e.
func (o Order) Restrict(e *Entity) []string {
	out := make([]string, 0, e.Len())
	for _, name := range o {
		if e.Has(name) {
			out = append(out, name)
		}
	}
	return out
}
