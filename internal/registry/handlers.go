package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/parser"
)

// RegisterConverter registers a token converter.
func (r *Registry) RegisterConverter(name string, t convert.Type) {
	if _, exists := r.converters[name]; exists {
		panic(fmt.Sprintf("converter with name '%s' already registered", name))
	}
	slog.Debug("Registering converter.", "name", name)
	r.converters[name] = t
}

// RegisterValidator registers a parser validation hook.
func (r *Registry) RegisterValidator(name string, fn parser.ValidateFunc) {
	if _, exists := r.validators[name]; exists {
		panic(fmt.Sprintf("validator with name '%s' already registered", name))
	}
	slog.Debug("Registering validator.", "name", name)
	r.validators[name] = fn
}

// RegisterProducer registers a parser post-processing hook.
func (r *Registry) RegisterProducer(name string, fn parser.ProduceFunc) {
	if _, exists := r.producers[name]; exists {
		panic(fmt.Sprintf("producer with name '%s' already registered", name))
	}
	slog.Debug("Registering producer.", "name", name)
	r.producers[name] = fn
}

// RegisterAction registers the function of a callback argument.
func (r *Registry) RegisterAction(name string, fn argument.ActionFunc) {
	if _, exists := r.actions[name]; exists {
		panic(fmt.Sprintf("action with name '%s' already registered", name))
	}
	slog.Debug("Registering action.", "name", name)
	r.actions[name] = fn
}
