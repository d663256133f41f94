package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/chainforge/internal/componentid"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/errors"
)

// ExclusionPolicy decides what happens when a chain excludes a component
// that is not part of its flattened set.
type ExclusionPolicy int

const (
	// ExclusionWarn logs a warning and continues.
	ExclusionWarn ExclusionPolicy = iota
	// ExclusionIgnore silently continues.
	ExclusionIgnore
	// ExclusionFail aborts flattening with an ExclusionError.
	ExclusionFail
)

// ParseExclusionPolicy maps "warn", "ignore" and "fail" to a policy.
// The empty string yields the default, ExclusionWarn.
func ParseExclusionPolicy(s string) (ExclusionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn":
		return ExclusionWarn, nil
	case "ignore":
		return ExclusionIgnore, nil
	case "fail":
		return ExclusionFail, nil
	}
	return ExclusionWarn, fmt.Errorf("unknown exclusion policy %q (expected warn, ignore or fail)", s)
}

func (p ExclusionPolicy) String() string {
	switch p {
	case ExclusionIgnore:
		return "ignore"
	case ExclusionFail:
		return "fail"
	default:
		return "warn"
	}
}

// Flattener resolves chain inheritance. Results are memoized per chain id,
// so one Flattener should live exactly as long as one build.
type Flattener struct {
	model  *ChainsModel
	policy ExclusionPolicy
	memo   map[string]*ChainSpecification
	// stack holds the chains currently being flattened, outermost first.
	stack []componentid.ID
}

// NewFlattener creates a flattener over m.
func NewFlattener(m *ChainsModel, policy ExclusionPolicy) *Flattener {
	return &Flattener{
		model:  m,
		policy: policy,
		memo:   make(map[string]*ChainSpecification),
	}
}

// Flatten returns spec with its inheritance resolved. The returned value
// has an empty Inheritance and is shared between callers; do not modify it.
func (f *Flattener) Flatten(ctx context.Context, spec *ChainSpecification) (*ChainSpecification, error) {
	key := spec.ID.Key()
	if flat, ok := f.memo[key]; ok {
		return flat, nil
	}

	for i, onStack := range f.stack {
		if onStack.Key() == key {
			path := make([]string, 0, len(f.stack)-i+1)
			for _, id := range f.stack[i:] {
				path = append(path, id.String())
			}
			path = append(path, spec.ID.String())
			return nil, errors.WithStackTrace(&errors.InheritanceCycleError{Path: path})
		}
	}

	f.stack = append(f.stack, spec.ID)
	defer func() { f.stack = f.stack[:len(f.stack)-1] }()

	refs := newRefSet()
	for _, r := range spec.ComponentReferences {
		refs.add(r)
	}
	phases := newPhaseSet()
	phases.add(spec.Phases...)

	for _, parentSpec := range spec.Inheritance.ChainSpecifications {
		parent, ok := f.model.ChainSpecification(parentSpec)
		if !ok {
			return nil, errors.WithStackTrace(&errors.UnresolvedReferenceError{
				From: spec.ID.String(),
				Ref:  parentSpec.String(),
				Kind: errors.ChainReference,
			})
		}

		flatParent, err := f.Flatten(ctx, parent)
		if err != nil {
			return nil, err
		}
		for _, r := range flatParent.ComponentReferences {
			refs.add(r)
		}
		phases.add(flatParent.Phases...)
	}

	for _, excl := range spec.Inheritance.ExcludedComponents {
		if refs.removeCovered(excl) > 0 {
			continue
		}
		switch f.policy {
		case ExclusionFail:
			return nil, errors.WithStackTrace(&errors.ExclusionError{
				ChainID:  spec.ID.String(),
				Excluded: excl.String(),
			})
		case ExclusionWarn:
			ctxlog.FromContext(ctx).Warn("Excluded component is not part of the chain.",
				"chain", spec.ID.String(), "excluded", excl.String())
		}
	}

	flat := &ChainSpecification{
		ID:                  spec.ID,
		ComponentReferences: refs.list(),
		Phases:              phases.order,
		Source:              spec.Source,
	}
	f.memo[key] = flat
	return flat, nil
}
