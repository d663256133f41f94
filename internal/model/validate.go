package model

import (
	"sort"
	"strings"

	"github.com/vk/chainforge/internal/errors"
)

// Validate runs the structural checks over the whole model and reports every
// problem found: component references and inherited chains that resolve to
// nothing, and inheritance cycles. Each cycle is reported once.
func (m *ChainsModel) Validate() error {
	var errs *errors.MultiError

	specs := m.chains.All()
	for _, s := range specs {
		for _, ref := range s.ComponentReferences {
			if _, ok := m.Component(ref); !ok {
				errs = errs.Append(errors.WithStackTrace(&errors.UnresolvedReferenceError{
					From: s.ID.String(),
					Ref:  ref.String(),
					Kind: errors.ComponentReference,
				}))
			}
		}
		for _, parent := range s.Inheritance.ChainSpecifications {
			if _, ok := m.ChainSpecification(parent); !ok {
				errs = errs.Append(errors.WithStackTrace(&errors.UnresolvedReferenceError{
					From: s.ID.String(),
					Ref:  parent.String(),
					Kind: errors.ChainReference,
				}))
			}
		}
	}

	for _, path := range m.inheritanceCycles() {
		errs = errs.Append(errors.WithStackTrace(&errors.InheritanceCycleError{Path: path}))
	}

	return errs.ErrorOrNil()
}

// inheritanceCycles walks the inheritance graph depth first in id order and
// returns one path per distinct cycle.
func (m *ChainsModel) inheritanceCycles() [][]string {
	const (
		unvisited = iota
		inProgress
		done
	)

	state := make(map[string]int)
	reported := make(map[string]struct{})
	var cycles [][]string
	var stack []*ChainSpecification

	var visit func(s *ChainSpecification)
	visit = func(s *ChainSpecification) {
		key := s.ID.Key()
		switch state[key] {
		case done:
			return
		case inProgress:
			start := 0
			for i, onStack := range stack {
				if onStack.ID.Key() == key {
					start = i
					break
				}
			}
			path := make([]string, 0, len(stack)-start+1)
			members := make([]string, 0, len(stack)-start)
			for _, c := range stack[start:] {
				path = append(path, c.ID.String())
				members = append(members, c.ID.Key())
			}
			path = append(path, s.ID.String())

			sort.Strings(members)
			signature := strings.Join(members, "\x00")
			if _, seen := reported[signature]; !seen {
				reported[signature] = struct{}{}
				cycles = append(cycles, path)
			}
			return
		}

		state[key] = inProgress
		stack = append(stack, s)
		for _, parentSpec := range s.Inheritance.ChainSpecifications {
			if parent, ok := m.ChainSpecification(parentSpec); ok {
				visit(parent)
			}
		}
		stack = stack[:len(stack)-1]
		state[key] = done
	}

	for _, s := range m.chains.All() {
		if state[s.ID.Key()] == unvisited {
			visit(s)
		}
	}
	return cycles
}
