package generic

import (
	"context"

	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/componentid"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// New builds an instance that carries its config as is.
func New(_ context.Context, id componentid.ID, config map[string]string) (*catalog.Instance, error) {
	return catalog.NewInstance(id, catalog.DefaultClass, config), nil
}

// Register registers the factory with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterFactory(catalog.DefaultClass, New)
}
