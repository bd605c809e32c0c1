package declare

import (
	"context"
	"fmt"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/ctxlog"
	"github.com/specialistvlad/declparse/internal/docstring"
	"github.com/specialistvlad/declparse/internal/parser"
)

// translateParser builds the node of pb and, recursively, its sub-parsers.
func (l *Loader) translateParser(ctx context.Context, pb *parserBlock, root bool) (*parser.Node, error) {
	logger := ctxlog.FromContext(ctx).With("parser", pb.Name)
	logger.Debug("Translating parser block.", "arguments", len(pb.Arguments), "parsers", len(pb.Parsers))

	order, err := parser.ParseOrder(str(pb.Order))
	if err != nil {
		return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
	}
	cfg := parser.Config{
		Description:   str(pb.Description),
		Epilog:        str(pb.Epilog),
		Help:          str(pb.Help),
		Order:         order,
		Lifted:        boolOr(pb.Lifted, false),
		ParseIfAbsent: !boolOr(pb.SkipIfAbsent, true),
	}
	if root {
		cfg.Prog = pb.Name
		if pb.Prog != nil {
			cfg.Prog = *pb.Prog
		}
	}
	if pb.Validate != nil {
		if cfg.Validate, err = l.registry.Validator(*pb.Validate); err != nil {
			return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
		}
	}
	if pb.Produce != nil {
		if cfg.Produce, err = l.registry.Producer(*pb.Produce); err != nil {
			return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
		}
	}
	if cfg.Defaults, err = literalObject(ctx, pb.Defaults, "defaults"); err != nil {
		return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
	}

	documented := map[string]string{}
	if pb.Doc != nil {
		style := docstring.Style(str(pb.DocStyle))
		if style == "" {
			style = docstring.Google
		}
		if documented, err = docstring.Analyze(style, *pb.Doc); err != nil {
			return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
		}
		if cfg.Description == "" {
			cfg.Description = docstring.Summary(*pb.Doc)
		}
	}

	decls := make([]parser.Declaration, 0, len(pb.Arguments)+len(pb.Parsers))
	for _, ab := range pb.Arguments {
		a, err := l.translateArgument(ctx, ab)
		if err != nil {
			return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
		}
		if a.Help == "" {
			a.Help = documented[a.Name]
		}
		decls = append(decls, parser.Arg(a))
	}
	for _, child := range pb.Parsers {
		sub, err := l.translateParser(ctx, child, false)
		if err != nil {
			return nil, fmt.Errorf("parser %q: %w", pb.Name, err)
		}
		decls = append(decls, parser.Sub(child.Name, sub))
	}

	return parser.New(cfg, decls...)
}

// translateArgument turns one argument block into a validated Argument.
func (l *Loader) translateArgument(ctx context.Context, ab *argumentBlock) (*argument.Argument, error) {
	a := argument.Argument{
		Name:     ab.Name,
		Short:    str(ab.Short),
		Required: boolOr(ab.Required, false),
		Help:     str(ab.Help),
		Metavar:  str(ab.Metavar),
		AsManyAs: str(ab.AsManyAs),
		Exit:     boolOr(ab.Exit, false),
	}
	fail := func(err error) (*argument.Argument, error) {
		return nil, fmt.Errorf("argument %q: %w", ab.Name, err)
	}

	typ, implied, err := argumentType(ctx, ab.Type)
	if err != nil {
		return fail(err)
	}
	if ab.Converter != nil {
		if !typ.IsZero() {
			return fail(fmt.Errorf("type and converter are mutually exclusive"))
		}
		if typ, err = l.registry.Converter(*ab.Converter); err != nil {
			return fail(err)
		}
	}
	a.Type = typ

	if a.Action, err = argument.ParseKind(str(ab.Action)); err != nil {
		return fail(err)
	}
	if ab.Callback != nil {
		if ab.Action == nil {
			a.Action = argument.Callback
		}
		if a.Callback, err = l.registry.Action(*ab.Callback); err != nil {
			return fail(err)
		}
	}

	if a.Nargs, err = argument.ParseNargs(str(ab.Nargs)); err != nil {
		return fail(err)
	}
	if a.Nargs.IsZero() && a.Action == argument.Store {
		a.Nargs = implied
	}

	if a.Default, err = literal(ctx, ab.Default, "default"); err != nil {
		return fail(err)
	}
	if a.Const, err = literal(ctx, ab.Const, "const"); err != nil {
		return fail(err)
	}
	if a.Choices, err = literalList(ctx, ab.Choices, "choices"); err != nil {
		return fail(err)
	}

	return argument.New(a)
}
