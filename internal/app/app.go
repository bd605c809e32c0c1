package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/declparse/internal/ctxlog"
	"github.com/specialistvlad/declparse/internal/declare"
	"github.com/specialistvlad/declparse/internal/namespace"
	"github.com/specialistvlad/declparse/internal/parser"
	"github.com/specialistvlad/declparse/internal/registry"
)

// App holds a loaded parser tree together with the registry it was resolved
// against and its own logger.
type App struct {
	config   *Config
	logger   *slog.Logger
	registry *registry.Registry
	root     *parser.Node
}

// NewApp registers the built-in converters and the given modules, then loads
// the declaration named by cfg. Logs go to logW.
func NewApp(ctx context.Context, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	reg.Load(ctx, append([]registry.Module{registry.Builtin{}}, modules...)...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	root, err := declare.NewLoader(reg).Load(ctx, cfg.DeclarationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load declaration: %w", err)
	}
	logger.Debug("Declaration loaded.", "prog", root.Prog(), "children", root.Children())

	return &App{config: cfg, logger: logger, registry: reg, root: root}, nil
}

// Root returns the loaded parser tree.
func (a *App) Root() *parser.Node {
	return a.root
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Parse runs the loaded tree over tokens.
func (a *App) Parse(ctx context.Context, tokens []string) (*namespace.Namespace, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Parsing tokens.", "count", len(tokens))
	return a.root.ParseArgs(ctx, tokens)
}

// Render parses tokens and returns the canonical spelling of the result.
func (a *App) Render(ctx context.Context, tokens []string) ([]string, error) {
	ns, err := a.Parse(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return a.root.Render(ns), nil
}
