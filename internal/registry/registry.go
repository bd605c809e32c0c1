package registry

import (
	"fmt"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/parser"
)

// Module is the interface that a set of hooks implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the named hooks of a single application instance.
type Registry struct {
	converters map[string]convert.Type
	validators map[string]parser.ValidateFunc
	producers  map[string]parser.ProduceFunc
	actions    map[string]argument.ActionFunc
}

// New creates an empty Registry. Use Builtin to add the standard converters.
func New() *Registry {
	return &Registry{
		converters: make(map[string]convert.Type),
		validators: make(map[string]parser.ValidateFunc),
		producers:  make(map[string]parser.ProduceFunc),
		actions:    make(map[string]argument.ActionFunc),
	}
}

// Converter returns the converter registered under name.
func (r *Registry) Converter(name string) (convert.Type, error) {
	t, ok := r.converters[name]
	if !ok {
		return convert.Type{}, fmt.Errorf("unknown converter %q", name)
	}
	return t, nil
}

// Validator returns the validation hook registered under name.
func (r *Registry) Validator(name string) (parser.ValidateFunc, error) {
	fn, ok := r.validators[name]
	if !ok {
		return nil, fmt.Errorf("unknown validator %q", name)
	}
	return fn, nil
}

// Producer returns the post-processing hook registered under name.
func (r *Registry) Producer(name string) (parser.ProduceFunc, error) {
	fn, ok := r.producers[name]
	if !ok {
		return nil, fmt.Errorf("unknown producer %q", name)
	}
	return fn, nil
}

// Action returns the callback registered under name.
func (r *Registry) Action(name string) (argument.ActionFunc, error) {
	fn, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", name)
	}
	return fn, nil
}
