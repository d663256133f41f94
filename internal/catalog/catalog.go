// Package catalog turns declared components into instances. Each component
// class maps to a Factory; modules compiled into the binary register their
// factories through the Module interface.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/chainforge/internal/chain"
	"github.com/vk/chainforge/internal/componentid"
	"github.com/vk/chainforge/internal/ctxlog"
	"github.com/vk/chainforge/internal/errors"
	"github.com/vk/chainforge/internal/model"
	"github.com/vk/chainforge/internal/registry"
)

// DefaultClass is used for components that declare no class.
const DefaultClass = "generic"

// Instance is a constructed component, ready to be placed in chains.
type Instance struct {
	*chain.Base
	Class  string
	Config map[string]string
}

// NewInstance creates an instance. config is copied.
func NewInstance(id componentid.ID, class string, config map[string]string) *Instance {
	cp := make(map[string]string, len(config))
	for k, v := range config {
		cp[k] = v
	}
	return &Instance{Base: chain.NewBase(id), Class: class, Config: cp}
}

// Factory constructs an instance of one class.
type Factory func(ctx context.Context, id componentid.ID, config map[string]string) (*Instance, error)

// Module is the interface that all component modules implement to be registered.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds the factories of one application instance.
type Catalog struct {
	factories map[string]Factory
}

// New creates a catalog with the given modules registered.
func New(modules ...Module) *Catalog {
	c := &Catalog{factories: make(map[string]Factory)}
	for _, m := range modules {
		m.Register(c)
	}
	return c
}

// RegisterFactory registers the factory for class. Registering a class twice
// is a programming error and panics.
func (c *Catalog) RegisterFactory(class string, f Factory) {
	if _, exists := c.factories[class]; exists {
		panic(fmt.Sprintf("factory for class '%s' already registered", class))
	}
	c.factories[class] = f
}

// Classes returns the registered classes, sorted.
func (c *Catalog) Classes() []string {
	out := make([]string, 0, len(c.factories))
	for class := range c.factories {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// Instantiate constructs one instance per component model and returns them
// as a frozen registry. Every failing component is reported.
func (c *Catalog) Instantiate(ctx context.Context, m *model.ChainsModel) (*registry.Registry[*Instance], error) {
	logger := ctxlog.FromContext(ctx)
	var errs *errors.MultiError

	b := registry.NewBuilder[*Instance]()
	for _, cm := range m.AllComponents() {
		class := cm.Class
		if class == "" {
			class = DefaultClass
		}

		factory, ok := c.factories[class]
		if !ok {
			errs = errs.Append(errors.Errorf("component '%s': unknown class '%s' (known: %v)", cm.ID, class, c.Classes()))
			continue
		}

		inst, err := build(ctx, factory, cm)
		if err != nil {
			errs = errs.Append(errors.Errorf("component '%s' (class '%s'): %w", cm.ID, class, err))
			continue
		}
		if err := b.Register(cm.ID, inst); err != nil {
			errs = errs.Append(errors.WithStackTrace(err))
			continue
		}
		logger.Debug("Instantiated component.", "component", cm.ID.String(), "class", class)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return b.Freeze(), nil
}

// build runs factory, turning a panic or a nil instance into an error.
func build(ctx context.Context, factory Factory, cm *model.ComponentModel) (inst *Instance, err error) {
	defer errors.Recover(func(cause error) {
		inst, err = nil, errors.Errorf("factory panicked: %w", cause)
	})

	inst, err = factory(ctx, cm.ID, cm.Config)
	if err == nil && inst == nil {
		err = errors.New("factory returned no instance")
	}
	return inst, err
}
