package testutil

import (
	"github.com/specialistvlad/declparse/internal/namespace"
	"github.com/specialistvlad/declparse/internal/registry"
)

// NoOpModule registers a "noop" validator, producer and action, for
// declarations that must pass reference checks but whose hooks do not matter.
type NoOpModule struct{}

// Register implements the registry.Module interface.
func (m *NoOpModule) Register(r *registry.Registry) {
	r.RegisterValidator("noop", func(*namespace.Namespace) error { return nil })
	r.RegisterProducer("noop", func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
		return ns, unknown, nil
	})
	r.RegisterAction("noop", func(*namespace.Namespace) error { return nil })
}
