package declare

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/declparse/internal/ctxlog"
	"github.com/specialistvlad/declparse/internal/fsutil"
	"github.com/specialistvlad/declparse/internal/parser"
	"github.com/specialistvlad/declparse/internal/registry"
)

// ErrNoParser is returned when the declarations hold no top-level parser.
var ErrNoParser = errors.New("no top-level parser block found")

// Loader builds parser trees from HCL declarations. Hook names are resolved
// against its registry.
type Loader struct {
	registry *registry.Registry
}

// NewLoader creates a loader resolving names against reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{registry: reg}
}

// Load reads every .hcl file found under paths. Exactly one top-level parser
// block must exist across all of them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*parser.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	p := hclparse.NewParser()
	var blocks []*parserBlock
	for _, file := range files {
		hclFile, diags := p.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		found, err := decode(hclFile, file)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, found...)
	}
	return l.build(ctx, blocks)
}

// Parse builds the tree declared by a single in-memory source.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*parser.Node, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	blocks, err := decode(hclFile, filename)
	if err != nil {
		return nil, err
	}
	return l.build(ctx, blocks)
}

func decode(file *hcl.File, filename string) ([]*parserBlock, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return root.Parsers, nil
}

// build validates the hook references of the single root block and
// translates it.
func (l *Loader) build(ctx context.Context, blocks []*parserBlock) (*parser.Node, error) {
	switch len(blocks) {
	case 0:
		return nil, ErrNoParser
	case 1:
	default:
		names := make([]string, len(blocks))
		for i, b := range blocks {
			names[i] = b.Name
		}
		return nil, fmt.Errorf("expected exactly one top-level parser block, found %d: %v", len(blocks), names)
	}
	root := blocks[0]

	if err := l.registry.ValidateRefs(ctx, collectRefs(root, "")); err != nil {
		return nil, err
	}
	node, err := l.translateParser(ctx, root, true)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("HCL loading complete.", "prog", node.Prog())
	return node, nil
}
