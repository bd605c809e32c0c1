package testutil

import (
	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/parser"
	"github.com/specialistvlad/declparse/internal/registry"
)

// SimpleModule registers whatever hooks a test puts in its maps.
type SimpleModule struct {
	Converters map[string]convert.Type
	Validators map[string]parser.ValidateFunc
	Producers  map[string]parser.ProduceFunc
	Actions    map[string]argument.ActionFunc
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for name, t := range m.Converters {
		r.RegisterConverter(name, t)
	}
	for name, fn := range m.Validators {
		r.RegisterValidator(name, fn)
	}
	for name, fn := range m.Producers {
		r.RegisterProducer(name, fn)
	}
	for name, fn := range m.Actions {
		r.RegisterAction(name, fn)
	}
}
