package configurer

import (
	"context"

	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/errors"
	"github.com/vk/chainforge/internal/model"
	"github.com/vk/chainforge/internal/ordering"
	"github.com/vk/chainforge/internal/registry"
)

type options struct {
	exclusionPolicy model.ExclusionPolicy
}

// Option configures PrepareChainRegistry.
type Option func(*options)

// WithExclusionPolicy sets how exclusions that remove nothing are handled.
// The default is model.ExclusionWarn.
func WithExclusionPolicy(p model.ExclusionPolicy) Option {
	return func(o *options) {
		o.exclusionPolicy = p
	}
}

// PrepareChainRegistry builds every chain of m from the components in in and
// registers them into out. Any error leaves out untouched. Errors are
// *errors.ConfigurationError values naming the failing chain when there is one.
func PrepareChainRegistry[C chain.Component](
	ctx context.Context,
	out *registry.Builder[*chain.Chain[C]],
	m *model.ChainsModel,
	in *registry.Registry[C],
	opts ...Option,
) error {
	o := options{exclusionPolicy: model.ExclusionWarn}
	for _, opt := range opts {
		opt(&o)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Chain assembly started.", "components", in.Len(), "chains", len(m.ChainSpecifications()))

	if err := initDependencies(m, in); err != nil {
		return err
	}

	specs, err := m.AllChainsFlattened(ctx, o.exclusionPolicy)
	if err != nil {
		var cycle *errors.InheritanceCycleError
		if errors.As(err, &cycle) {
			return errors.WrapConfiguration(cycle.Path[0], err)
		}
		var unresolved *errors.UnresolvedReferenceError
		if errors.As(err, &unresolved) {
			return errors.WrapConfiguration(unresolved.From, err)
		}
		var exclusion *errors.ExclusionError
		if errors.As(err, &exclusion) {
			return errors.WrapConfiguration(exclusion.ChainID, err)
		}
		return errors.WrapConfiguration("", err)
	}

	chains := make([]*chain.Chain[C], 0, len(specs))
	for _, spec := range specs {
		c, err := buildChain(ctx, spec, in)
		if err != nil {
			return err
		}
		logger.Debug("Chain assembled.", "chain", c.ID().String(), "components", c.Len(), "phases", len(c.Phases()))
		chains = append(chains, c)
	}

	if out.Frozen() {
		return errors.NewConfigurationError("", "chain registry is frozen")
	}
	seen := make(map[string]struct{}, len(chains))
	for _, c := range chains {
		if _, dup := seen[c.ID().Key()]; dup || out.Contains(c.ID()) {
			return errors.NewConfigurationError(c.ID().String(), "chain is already registered")
		}
		seen[c.ID().Key()] = struct{}{}
	}
	for _, c := range chains {
		if err := out.Register(c.ID(), c); err != nil {
			return errors.WrapConfiguration(c.ID().String(), err)
		}
	}

	logger.Info("Chain assembly complete.", "chains", len(chains))
	return nil
}

// initDependencies attaches every model's declared dependencies to its
// component instance. The instance registered under exactly the model's id
// wins; an unversioned id would otherwise resolve to the highest version.
func initDependencies[C chain.Component](m *model.ChainsModel, in *registry.Registry[C]) error {
	for _, cm := range m.AllComponents() {
		c, ok := in.Get(cm.ID)
		if !ok {
			spec := cm.ID.Spec()
			if c, ok = in.Resolve(spec); !ok {
				return errors.NewConfigurationError("", "No such component '%s'", spec)
			}
		}
		c.InitDependencies(cm.Dependencies)
	}
	return nil
}

func buildChain[C chain.Component](ctx context.Context, spec *model.ChainSpecification, in *registry.Registry[C]) (*chain.Chain[C], error) {
	chainID := spec.ID.String()

	components := make([]C, 0, len(spec.ComponentReferences))
	seen := make(map[string]struct{}, len(spec.ComponentReferences))
	for _, ref := range spec.ComponentReferences {
		id, c, ok := in.ResolveID(ref)
		if !ok {
			return nil, errors.NewConfigurationError(chainID, "No such component '%s'", ref)
		}
		if _, dup := seen[id.Key()]; dup {
			continue
		}
		seen[id.Key()] = struct{}{}
		components = append(components, c)
	}

	res, err := ordering.Order(components, spec.Phases)
	if err != nil {
		return nil, errors.WrapConfiguration(chainID, err)
	}
	for _, p := range res.Shadowed {
		ctxlog.FromContext(ctx).Warn("Phase is provided by a component; its constraints are ignored.",
			"chain", chainID,
			"phase", p.Name,
			"before", p.Dependencies.Before,
			"after", p.Dependencies.After,
		)
	}

	return chain.New(spec.ID, res.Components, res.Phases), nil
}
