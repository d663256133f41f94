package ordering

import (
	"github.com/vk/chainforge/internal/chain"
)

// graph is the dependency graph of one chain. Nodes live in a slice so that
// every traversal is deterministic.
type graph struct {
	nodes []*node
	// providers maps a name to the indices of the nodes providing it, in
	// insertion order.
	providers map[string][]int

	phaseCount     int
	componentCount int

	// shadowed holds declared phases dropped because a component provides
	// their name, together with the constraints they carried.
	shadowed []chain.Phase
}

func newGraph() *graph {
	return &graph{providers: make(map[string][]int)}
}

// addComponent adds a component node providing the given names.
func (g *graph) addComponent(name string, index int, deps chain.Dependencies, provides []string) {
	n := &node{
		kind:       componentNode,
		name:       name,
		priority:   g.componentCount,
		component:  index,
		deps:       deps,
		successors: make(map[int]struct{}),
	}
	g.componentCount++
	g.add(n, provides)
}

// addPhase adds a phase node unless some node already provides name. A
// phase shadowed by a component loses its own constraints; those are kept in
// g.shadowed.
func (g *graph) addPhase(name string, deps chain.Dependencies) {
	if g.isProvided(name) {
		if g.providedByComponent(name) && (len(deps.Before) > 0 || len(deps.After) > 0) {
			g.shadowed = append(g.shadowed, chain.Phase{Name: name, Dependencies: deps})
		}
		return
	}
	n := &node{
		kind:       phaseNode,
		name:       name,
		priority:   g.phaseCount,
		component:  -1,
		deps:       deps,
		successors: make(map[int]struct{}),
	}
	g.phaseCount++
	g.add(n, []string{name})
}

func (g *graph) add(n *node, provides []string) {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, n)
	for _, name := range provides {
		g.providers[name] = append(g.providers[name], idx)
	}
}

func (g *graph) isProvided(name string) bool {
	return len(g.providers[name]) > 0
}

func (g *graph) providedByComponent(name string) bool {
	for _, idx := range g.providers[name] {
		if g.nodes[idx].kind == componentNode {
			return true
		}
	}
	return false
}

// addEdge records that to must come after from. Self edges are dropped and
// duplicate edges collapse.
func (g *graph) addEdge(from, to int) {
	if from == to {
		return
	}
	succ := g.nodes[from].successors
	if _, exists := succ[to]; exists {
		return
	}
	succ[to] = struct{}{}
	g.nodes[to].inDegree++
}

// link turns every node's before/after constraints into edges.
func (g *graph) link() {
	for idx, n := range g.nodes {
		for _, name := range n.deps.After {
			for _, p := range g.providers[name] {
				g.addEdge(p, idx)
			}
		}
		for _, name := range n.deps.Before {
			for _, p := range g.providers[name] {
				g.addEdge(idx, p)
			}
		}
	}
}
