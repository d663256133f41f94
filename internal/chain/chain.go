package chain

import (
	"strings"

	"github.com/vk/chainforge/internal/componentid"
)

// Chain is an ordered, immutable pipeline of resolved components plus the
// phase markers that were interleaved among them.
type Chain[C Component] struct {
	id         componentid.ID
	components []C
	phases     []string
}

// New creates a chain, copying the given slices.
func New[C Component](id componentid.ID, components []C, phases []string) *Chain[C] {
	return &Chain[C]{
		id:         id,
		components: append([]C(nil), components...),
		phases:     append([]string(nil), phases...),
	}
}

// ID returns the chain's identifier.
func (c *Chain[C]) ID() componentid.ID {
	return c.id
}

// Components returns a copy of the ordered component list.
func (c *Chain[C]) Components() []C {
	return append([]C(nil), c.components...)
}

// Phases returns a copy of the ordered phase names.
func (c *Chain[C]) Phases() []string {
	return append([]string(nil), c.phases...)
}

// Len returns the number of components.
func (c *Chain[C]) Len() int {
	return len(c.components)
}

// ComponentIDs returns the ids of the components in chain order.
func (c *Chain[C]) ComponentIDs() []componentid.ID {
	ids := make([]componentid.ID, len(c.components))
	for i, comp := range c.components {
		ids[i] = comp.ID()
	}
	return ids
}

func (c *Chain[C]) String() string {
	names := make([]string, len(c.components))
	for i, comp := range c.components {
		names[i] = comp.ID().String()
	}
	return c.id.String() + "[" + strings.Join(names, ", ") + "]"
}
