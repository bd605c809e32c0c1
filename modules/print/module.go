// Package print provides an action that shows the namespace parsed so far
// and ends the pass, for debugging declarations.
package print

import (
	"log/slog"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/namespace"
	"github.com/specialistvlad/declparse/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnAction reports the namespace as the output of a clean exit.
func OnAction(ns *namespace.Namespace) error {
	slog.Debug("Printing namespace.", "fields", ns.Len())
	return &argument.Exit{Code: 0, Output: ns.String()}
}

// Register registers the action as "print_namespace".
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAction("print_namespace", OnAction)
}
