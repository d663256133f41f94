package model

import (
	"context"

	"github.com/vk/chainforge/internal/componentid"
	"github.com/vk/chainforge/internal/errors"
	"github.com/vk/chainforge/internal/registry"
)

// ChainsModel holds every component and chain specification of one
// configuration generation. It is immutable once created.
type ChainsModel struct {
	components *registry.Registry[*ComponentModel]
	chains     *registry.Registry[*ChainSpecification]
}

// New builds a model. Duplicate component or chain ids are reported together.
func New(components []*ComponentModel, chains []*ChainSpecification) (*ChainsModel, error) {
	var errs *errors.MultiError

	cb := registry.NewBuilder[*ComponentModel]()
	for _, c := range components {
		if err := cb.Register(c.ID, c); err != nil {
			errs = errs.Append(errors.Errorf("component %w", err))
		}
	}

	sb := registry.NewBuilder[*ChainSpecification]()
	for _, s := range chains {
		if err := sb.Register(s.ID, s); err != nil {
			errs = errs.Append(errors.Errorf("chain %w", err))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &ChainsModel{components: cb.Freeze(), chains: sb.Freeze()}, nil
}

// AllComponents returns every component model in id order.
func (m *ChainsModel) AllComponents() []*ComponentModel {
	return m.components.All()
}

// ChainSpecifications returns every chain specification, unflattened, in id order.
func (m *ChainsModel) ChainSpecifications() []*ChainSpecification {
	return m.chains.All()
}

// Component returns the best component model matching spec.
func (m *ChainsModel) Component(spec componentid.Specification) (*ComponentModel, bool) {
	return m.components.Resolve(spec)
}

// ChainSpecification returns the best chain specification matching spec.
func (m *ChainsModel) ChainSpecification(spec componentid.Specification) (*ChainSpecification, bool) {
	return m.chains.Resolve(spec)
}

// AllChainsFlattened flattens every chain specification and returns them in
// id order. The first failure aborts.
func (m *ChainsModel) AllChainsFlattened(ctx context.Context, policy ExclusionPolicy) ([]*ChainSpecification, error) {
	f := NewFlattener(m, policy)

	specs := m.chains.All()
	out := make([]*ChainSpecification, 0, len(specs))
	for _, s := range specs {
		flat, err := f.Flatten(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, flat)
	}
	return out, nil
}
