// Package env_vars fills fields the command line left unset from the
// process environment.
package env_vars

import (
	"os"
	"strings"

	"github.com/specialistvlad/declparse/internal/namespace"
	"github.com/specialistvlad/declparse/internal/registry"
)

// Module implements the registry.Module interface for this package. Prefix
// is prepended to the upper-cased field name to form the variable name.
type Module struct {
	Prefix string

	// lookup defaults to os.LookupEnv.
	lookup func(string) (string, bool)
}

// VarName returns the environment variable consulted for field.
func (m *Module) VarName(field string) string {
	return m.Prefix + strings.ToUpper(strings.ReplaceAll(field, "-", "_"))
}

// OnProduce sets every nil field of ns whose variable is defined. Values
// are stored as strings; unknown tokens pass through untouched.
func (m *Module) OnProduce(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
	lookup := m.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, k := range ns.Keys() {
		if ns.Value(k) != nil {
			continue
		}
		if v, ok := lookup(m.VarName(k)); ok {
			ns.Set(k, v)
		}
	}
	return ns, unknown, nil
}

// Register registers the producer as "env_vars".
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProducer("env_vars", m.OnProduce)
}
