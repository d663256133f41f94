package model

import (
	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/componentid"
)

// ComponentModel is a declared component.
type ComponentModel struct {
	ID           componentid.ID
	Class        string
	Dependencies chain.Dependencies
	Config       map[string]string
	// Source is the file the component was declared in, if known.
	Source string
}

// Inheritance lists the chains a chain inherits from and the components it
// drops from what it inherits.
type Inheritance struct {
	ChainSpecifications []componentid.Specification
	ExcludedComponents  []componentid.Specification
}

// ChainSpecification is a chain as declared. After flattening the
// Inheritance is empty and ComponentReferences holds the full set.
type ChainSpecification struct {
	ID                  componentid.ID
	ComponentReferences []componentid.Specification
	Inheritance         Inheritance
	Phases              []chain.Phase
	Source              string
}

// IsFlat reports whether the specification has no inheritance left.
func (s *ChainSpecification) IsFlat() bool {
	return len(s.Inheritance.ChainSpecifications) == 0 && len(s.Inheritance.ExcludedComponents) == 0
}

// refKey identifies a reference for union purposes: name plus namespace.
// Versions are deliberately left out so that the first reference to a
// component wins over later ones with a different version.
func refKey(s componentid.Specification) string {
	if s.Namespace == nil {
		return s.Name
	}
	return s.Name + "@" + s.Namespace.String()
}

// refSet is an insertion-ordered set of references keyed by refKey.
type refSet struct {
	order []componentid.Specification
	index map[string]int
}

func newRefSet() *refSet {
	return &refSet{index: make(map[string]int)}
}

// add inserts s unless a reference with the same key is present.
func (r *refSet) add(s componentid.Specification) {
	if _, exists := r.index[refKey(s)]; exists {
		return
	}
	r.index[refKey(s)] = len(r.order)
	r.order = append(r.order, s)
}

// removeCovered drops every reference covered by excl and returns how many
// were removed.
func (r *refSet) removeCovered(excl componentid.Specification) int {
	kept := r.order[:0:0]
	removed := 0
	for _, s := range r.order {
		if excl.Covers(s) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	if removed == 0 {
		return 0
	}
	r.order = kept
	r.index = make(map[string]int, len(kept))
	for i, s := range kept {
		r.index[refKey(s)] = i
	}
	return removed
}

func (r *refSet) list() []componentid.Specification {
	return append([]componentid.Specification(nil), r.order...)
}

// phaseSet is an insertion-ordered set of phases keyed by name.
type phaseSet struct {
	order []chain.Phase
	seen  map[string]struct{}
}

func newPhaseSet() *phaseSet {
	return &phaseSet{seen: make(map[string]struct{})}
}

func (p *phaseSet) add(phases ...chain.Phase) {
	for _, ph := range phases {
		if _, exists := p.seen[ph.Name]; exists {
			continue
		}
		p.seen[ph.Name] = struct{}{}
		p.order = append(p.order, ph)
	}
}
