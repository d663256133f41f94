package ordering

import (
	"github.com/vk/chainforge/internal/chain"
)

// nodeKind is the closed set of node variants. The numeric order is the
// ready-set class priority: phases sort before components.
type nodeKind int

const (
	phaseNode nodeKind = iota
	componentNode
)

func (k nodeKind) String() string {
	switch k {
	case phaseNode:
		return "phase"
	case componentNode:
		return "component"
	}
	return "unknown"
}

// node is a single vertex of the ordering graph.
type node struct {
	kind nodeKind
	// name is the phase name or the component id.
	name string
	// priority is the declaration order within the node's kind.
	priority int
	// component indexes the input slice for component nodes, -1 for phases.
	component int
	// deps holds the before/after constraints of the node.
	deps chain.Dependencies

	// successors holds the indices of nodes that must come after this one.
	successors map[int]struct{}
	inDegree   int
}

// less is the ready-set order: kind first, then declaration priority.
func less(a, b *node) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.priority < b.priority
}

// label is how a node is named in error messages.
func (n *node) label() string {
	if n.kind == phaseNode {
		return "phase '" + n.name + "'"
	}
	return "'" + n.name + "'"
}

// readySet is a min-heap of nodes ordered by less.
type readySet []*node

func (r readySet) Len() int           { return len(r) }
func (r readySet) Less(i, j int) bool { return less(r[i], r[j]) }
func (r readySet) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

func (r *readySet) Push(x any) {
	*r = append(*r, x.(*node))
}

func (r *readySet) Pop() any {
	old := *r
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*r = old[:len(old)-1]
	return n
}
