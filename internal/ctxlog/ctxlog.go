// Package ctxlog carries a slog.Logger through context.Context so that the
// parser tree, the declaration loader and the CLI share one logger without
// threading it through every constructor.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// discard is handed out when a caller never attached a logger. Library
// callers of the parser should not be forced to configure logging.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context, or a logger that
// drops every record when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return discard
	}
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return discard
}

// WithNode returns a context whose logger is tagged with the parser node path
// currently being processed.
func WithNode(ctx context.Context, path string) context.Context {
	if path == "" {
		path = "<root>"
	}
	return WithLogger(ctx, FromContext(ctx).With("node", path))
}
