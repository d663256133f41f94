package env_vars

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/internal/componentid"
)

// Class is the class name components declare to use this module.
const Class = "env_vars"

// requiredKey lists, comma separated, variables that must be set.
const requiredKey = "required"

// Module implements the catalog.Module interface for this package.
type Module struct{}

// New builds an instance whose config values have ${VAR} references
// expanded from the process environment.
func New(ctx context.Context, id componentid.ID, config map[string]string) (*catalog.Instance, error) {
	var missing []string
	for _, name := range strings.Split(config[requiredKey], ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := os.LookupEnv(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	expanded := make(map[string]string, len(config))
	for k, v := range config {
		if k == requiredKey {
			continue
		}
		expanded[k] = os.ExpandEnv(v)
	}
	return catalog.NewInstance(id, Class, expanded), nil
}

// Register registers the factory with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterFactory(Class, New)
}
