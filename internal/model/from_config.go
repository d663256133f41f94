package model

import (
	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/componentid"
	"github.com/vk/chainforge/internal/config"
	"github.com/vk/chainforge/internal/errors"
)

// FromConfig parses every id and reference in cfg and builds the model.
// Components declared inside a chain are namespaced by that chain's id and
// become part of its own references. All parse errors are reported together.
func FromConfig(cfg *config.Model) (*ChainsModel, error) {
	var errs *errors.MultiError
	var components []*ComponentModel
	var chains []*ChainSpecification

	for _, c := range cfg.Components {
		cm, err := componentFromConfig(c, nil)
		if err != nil {
			errs = errs.Append(err)
			continue
		}
		components = append(components, cm)
	}

	for _, c := range cfg.Chains {
		id, err := componentid.ParseID(c.ID)
		if err != nil {
			errs = errs.Append(errors.Errorf("%s: chain: %w", c.File, err))
			continue
		}

		spec := &ChainSpecification{ID: id, Source: c.File}

		for _, inner := range c.Inner {
			cm, err := componentFromConfig(inner, &id)
			if err != nil {
				errs = errs.Append(err)
				continue
			}
			components = append(components, cm)
			spec.ComponentReferences = append(spec.ComponentReferences, cm.ID.Spec())
		}

		spec.ComponentReferences = append(spec.ComponentReferences, parseSpecs(&errs, c.File, id, "component", c.Components)...)
		spec.Inheritance.ChainSpecifications = parseSpecs(&errs, c.File, id, "inherits", c.Inherits)
		spec.Inheritance.ExcludedComponents = parseSpecs(&errs, c.File, id, "excludes", c.Excludes)

		for _, p := range c.Phases {
			spec.Phases = append(spec.Phases, chain.NewPhase(p.Name, p.Before, p.After))
		}

		chains = append(chains, spec)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return New(components, chains)
}

func componentFromConfig(c *config.Component, namespace *componentid.ID) (*ComponentModel, error) {
	id, err := componentid.ParseID(c.ID)
	if err != nil {
		return nil, errors.Errorf("%s: component: %w", c.File, err)
	}
	if namespace != nil {
		if id.Namespace != nil {
			return nil, errors.Errorf("%s: component '%s' declared inside chain '%s' must not set a namespace", c.File, c.ID, namespace)
		}
		id = id.WithNamespace(*namespace)
	}

	return &ComponentModel{
		ID:           id,
		Class:        c.Class,
		Dependencies: chain.NewDependencies(c.Provides, c.Before, c.After),
		Config:       c.Config,
		Source:       c.File,
	}, nil
}

func parseSpecs(errs **errors.MultiError, file string, chainID componentid.ID, field string, raw []string) []componentid.Specification {
	var out []componentid.Specification
	for _, r := range raw {
		spec, err := componentid.ParseSpecification(r)
		if err != nil {
			*errs = (*errs).Append(errors.Errorf("%s: chain '%s' %s: %w", file, chainID, field, err))
			continue
		}
		out = append(out, spec)
	}
	return out
}
