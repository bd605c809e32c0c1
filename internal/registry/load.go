package registry

import (
	"context"

	"github.com/specialistvlad/declparse/internal/ctxlog"
)

// Load registers every module in order. A module registering a name that is
// already taken panics, as the individual Register functions do.
func (r *Registry) Load(ctx context.Context, modules ...Module) {
	logger := ctxlog.FromContext(ctx)
	for _, m := range modules {
		m.Register(r)
	}
	logger.Debug("Registry loaded.",
		"modules", len(modules),
		"converters", len(r.converters),
		"validators", len(r.validators),
		"producers", len(r.producers),
		"actions", len(r.actions),
	)
}
