// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/chainforge/internal/config"
	"github.com/vk/chainforge/internal/ctxlog"
)

// translateComponent converts the HCL-specific component schema into the agnostic model.
func (l *Loader) translateComponent(ctx context.Context, evalCtx *hcl.EvalContext, c *Component, file string) (*config.Component, error) {
	ctx = ctxlog.With(ctx, "component", c.ID)
	ctxlog.FromContext(ctx).Debug("Translating HCL component to internal config model.")

	values, err := evalConfig(ctx, evalCtx, c.Config)
	if err != nil {
		return nil, fmt.Errorf("%s: component '%s': %w", file, c.ID, err)
	}

	return &config.Component{
		ID:       c.ID,
		Class:    c.Class,
		Provides: c.Provides,
		Before:   c.Before,
		After:    c.After,
		Config:   values,
		File:     file,
	}, nil
}

// translateChain converts the HCL-specific chain schema into the agnostic model.
func (l *Loader) translateChain(ctx context.Context, evalCtx *hcl.EvalContext, c *Chain, file string) (*config.Chain, error) {
	ctx = ctxlog.With(ctx, "chain", c.ID)
	ctxlog.FromContext(ctx).Debug("Translating HCL chain to internal config model.")

	ch := &config.Chain{
		ID:         c.ID,
		Components: c.Components,
		Inherits:   c.Inherits,
		Excludes:   c.Excludes,
		File:       file,
	}
	for _, p := range c.Phases {
		ch.Phases = append(ch.Phases, &config.Phase{Name: p.Name, Before: p.Before, After: p.After})
	}
	for _, inner := range c.Inner {
		comp, err := l.translateComponent(ctx, evalCtx, inner, file)
		if err != nil {
			return nil, fmt.Errorf("in chain '%s': %w", c.ID, err)
		}
		ch.Inner = append(ch.Inner, comp)
	}
	return ch, nil
}
