package ordering

import (
	"container/heap"
	"sort"

	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/errors"
)

// Result is the outcome of ordering one chain.
type Result[C chain.Component] struct {
	// Components in emitted order.
	Components []C
	// Phases in emitted order.
	Phases []string
	// Sequence is the full emitted order, phases marked with a "phase:" prefix.
	Sequence []string
	// Shadowed lists declared phases whose name a component provides. Their
	// before/after constraints took no part in the ordering.
	Shadowed []chain.Phase
}

// Order sorts components, given in declaration order, so that every
// before/after constraint holds. Declared phases add anchors and
// phase-to-phase constraints. A declared phase whose name some component
// provides is replaced by that component and its own constraints are dropped;
// such phases are reported in Result.Shadowed. A dependency cycle yields an
// *errors.CycleError naming every node that could not be placed.
func Order[C chain.Component](components []C, phases []chain.Phase) (*Result[C], error) {
	g := buildGraph(components, phases)

	emitted, stuck := g.sort()
	if len(stuck) > 0 {
		return nil, errors.WithStackTrace(&errors.CycleError{Nodes: stuck})
	}

	res := &Result[C]{Sequence: make([]string, 0, len(emitted)), Shadowed: g.shadowed}
	for _, n := range emitted {
		switch n.kind {
		case phaseNode:
			res.Phases = append(res.Phases, n.name)
			res.Sequence = append(res.Sequence, "phase:"+n.name)
		case componentNode:
			res.Components = append(res.Components, components[n.component])
			res.Sequence = append(res.Sequence, n.name)
		}
	}
	return res, nil
}

// buildGraph creates component nodes first so that phase nodes are only
// created for names no component provides.
func buildGraph[C chain.Component](components []C, phases []chain.Phase) *graph {
	g := newGraph()

	for i, c := range components {
		deps := c.Dependencies()
		provides := append([]string{c.ID().Name}, deps.Provides...)
		g.addComponent(c.ID().String(), i, deps, provides)
	}

	for _, p := range phases {
		g.addPhase(p.Name, p.Dependencies)
	}
	for _, p := range phases {
		addReferencedPhases(g, p.Dependencies)
	}
	for _, c := range components {
		addReferencedPhases(g, c.Dependencies())
	}

	g.link()
	return g
}

func addReferencedPhases(g *graph, deps chain.Dependencies) {
	for _, name := range deps.After {
		g.addPhase(name, chain.Dependencies{})
	}
	for _, name := range deps.Before {
		g.addPhase(name, chain.Dependencies{})
	}
}

// sort runs Kahn's algorithm over the ready set. It returns the emitted
// nodes and, when a cycle blocks progress, the labels of every node left.
func (g *graph) sort() ([]*node, []string) {
	inDegree := make([]int, len(g.nodes))
	ready := make(readySet, 0, len(g.nodes))
	for i, n := range g.nodes {
		inDegree[i] = n.inDegree
		if n.inDegree == 0 {
			ready = append(ready, n)
		}
	}
	heap.Init(&ready)

	emitted := make([]*node, 0, len(g.nodes))
	for ready.Len() > 0 {
		n := heap.Pop(&ready).(*node)
		emitted = append(emitted, n)
		for succ := range n.successors {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				heap.Push(&ready, g.nodes[succ])
			}
		}
	}

	if len(emitted) == len(g.nodes) {
		return emitted, nil
	}

	var remaining []*node
	for i, n := range g.nodes {
		if inDegree[i] > 0 {
			remaining = append(remaining, n)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return less(remaining[i], remaining[j]) })

	stuck := make([]string, len(remaining))
	for i, n := range remaining {
		stuck[i] = n.label()
	}
	return emitted, stuck
}
