package cli

import (
	"github.com/specialistvlad/declparse/internal/registry"
	"github.com/specialistvlad/declparse/modules/env_vars"
	"github.com/specialistvlad/declparse/modules/print"
)

// coreModules is the list of hook modules compiled into the declparse
// binary, on top of the built-in converters.
var coreModules = []registry.Module{
	&env_vars.Module{Prefix: "DECLPARSE_"},
	&print.Module{},
}
