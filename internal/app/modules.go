package app

import (
	"github.com/vk/chainforge/internal/catalog"
	"github.com/vk/chainforge/modules/env_vars"
	"github.com/vk/chainforge/modules/generic"
)

// coreModules is the definitive list of all component modules that are
// compiled into the chainforge binary.
var coreModules = []catalog.Module{
	&generic.Module{},
	&env_vars.Module{},
}
