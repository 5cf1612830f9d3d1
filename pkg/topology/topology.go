// Package topology builds and inspects the undirected zone adjacency
// graph that the constraint validator and scorer reason about.
package topology

import (
	"sort"

	"github.com/heliosworks/habplanner/pkg/habitat"
)

// Graph maps a zone name to its sorted, deduplicated neighbor list.
// Neighbor lists are kept sorted for deterministic traversal order.
type Graph map[string][]string

// Build symmetrizes each zone's declared connection list into an
// undirected graph. Self-loops are dropped. Declared neighbors that do
// not exist as zones become stub nodes so dangling references stay
// visible to the connectivity check.
func Build(zones []habitat.Zone) Graph {
	sets := make(map[string]map[string]bool)
	ensure := func(name string) map[string]bool {
		if sets[name] == nil {
			sets[name] = make(map[string]bool)
		}
		return sets[name]
	}

	for _, zone := range zones {
		name := string(zone.Name)
		ensure(name)
		for _, nbr := range zone.Connections {
			if nbr == name {
				continue
			}
			ensure(name)[nbr] = true
			ensure(nbr)[name] = true
		}
	}

	g := make(Graph, len(sets))
	for name, nbrs := range sets {
		list := make([]string, 0, len(nbrs))
		for nbr := range nbrs {
			list = append(list, nbr)
		}
		sort.Strings(list)
		g[name] = list
	}
	return g
}

// Nodes returns the graph's node names in sorted order.
func (g Graph) Nodes() []string {
	nodes := make([]string, 0, len(g))
	for name := range g {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// HasEdge reports whether a direct edge exists between a and b.
func (g Graph) HasEdge(a, b string) bool {
	for _, nbr := range g[a] {
		if nbr == b {
			return true
		}
	}
	return false
}

// Reachable returns the set of nodes reachable from the
// lexicographically first node via breadth-first traversal.
func (g Graph) Reachable() map[string]bool {
	seen := make(map[string]bool, len(g))
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return seen
	}

	queue := []string{nodes[0]}
	seen[nodes[0]] = true
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, nbr := range g[node] {
			if !seen[nbr] {
				seen[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}
	return seen
}

// HasCycle reports whether any component contains a cycle. The
// traversal is an iterative depth-first walk with an explicit frame
// stack; a cycle is any edge back to an already-visited node other
// than the immediate parent.
func (g Graph) HasCycle() bool {
	visited := make(map[string]bool, len(g))

	type frame struct {
		node   string
		parent string
		next   int
	}

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack := []frame{{node: start}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			nbrs := g[f.node]
			if f.next >= len(nbrs) {
				stack = stack[:len(stack)-1]
				continue
			}
			nbr := nbrs[f.next]
			f.next++
			if nbr == f.parent {
				continue
			}
			if visited[nbr] {
				return true
			}
			visited[nbr] = true
			stack = append(stack, frame{node: nbr, parent: f.node})
		}
	}
	return false
}

// Hops returns the breadth-first shortest-path hop count from one
// node to another, or -1 when the target is unreachable.
func (g Graph) Hops(from, to string) int {
	type entry struct {
		node string
		dist int
	}
	queue := []entry{{node: from}}
	seen := map[string]bool{from: true}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if e.node == to {
			return e.dist
		}
		for _, nbr := range g[e.node] {
			if !seen[nbr] {
				seen[nbr] = true
				queue = append(queue, entry{node: nbr, dist: e.dist + 1})
			}
		}
	}
	return -1
}
