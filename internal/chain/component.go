package chain

import (
	"github.com/vk/chainforge/internal/componentid"
)

// Component is anything that can be placed in a chain. Dependencies are
// attached once per configuration generation through InitDependencies.
type Component interface {
	ID() componentid.ID
	Dependencies() Dependencies
	InitDependencies(deps Dependencies)
}

// Base is an embeddable Component implementation.
type Base struct {
	id   componentid.ID
	deps Dependencies
}

// NewBase creates a Base with no declared dependencies.
func NewBase(id componentid.ID) *Base {
	return &Base{id: id}
}

// ID returns the component's identifier.
func (b *Base) ID() componentid.ID {
	return b.id
}

// Dependencies returns the declared dependencies. The component's own name is
// always provided.
func (b *Base) Dependencies() Dependencies {
	return b.deps.WithProvided(b.id.Name)
}

// InitDependencies replaces the declared dependencies.
func (b *Base) InitDependencies(deps Dependencies) {
	b.deps = deps
}
