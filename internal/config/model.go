package config

// Model is the unified, format-agnostic representation of every component
// and chain declared across all loaded files.
type Model struct {
	Components []*Component
	Chains     []*Chain
	// Files lists the files the model was loaded from, in load order.
	Files []string
}

// Component is the format-agnostic representation of a `component` block.
type Component struct {
	ID       string
	Class    string
	Provides []string
	Before   []string
	After    []string
	Config   map[string]string
	// File is the file the component was declared in.
	File string
}

// Chain is the format-agnostic representation of a `chain` block.
type Chain struct {
	ID         string
	Components []string
	Inherits   []string
	Excludes   []string
	Phases     []*Phase
	// Inner holds components declared inside the chain. They are namespaced
	// by the chain id and implicitly part of it.
	Inner []*Component
	File  string
}

// Phase is the format-agnostic representation of a `phase` block.
type Phase struct {
	Name   string
	Before []string
	After  []string
}

// Merge appends everything declared in other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Components = append(m.Components, other.Components...)
	m.Chains = append(m.Chains, other.Chains...)
	m.Files = append(m.Files, other.Files...)
}
