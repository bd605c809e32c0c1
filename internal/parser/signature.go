package parser

import (
	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/docstring"
)

// FromSignature builds a node for a documented parameter list. Explicit
// declarations come first and win over parameters of the same name; they
// only borrow the documented help when they have none. When cfg carries no
// Description, the first paragraph of the documentation is used.
func FromSignature(cfg Config, sig docstring.Signature, decls ...Declaration) (*Node, error) {
	params, err := sig.Described()
	if err != nil {
		return nil, err
	}
	documented := make(map[string]string, len(params))
	for _, p := range params {
		documented[p.Name] = p.Help
	}

	declared := make(map[string]bool)
	all := make([]Declaration, 0, len(decls)+len(params))
	for _, d := range decls {
		if ad, ok := d.(argDecl); ok && ad.arg != nil {
			declared[ad.arg.Name] = true
			if ad.arg.Help == "" {
				a := ad.arg.Clone()
				a.Help = documented[a.Name]
				d = Arg(a)
			}
		}
		all = append(all, d)
	}

	for _, p := range params {
		if declared[p.Name] {
			continue
		}
		a, err := argument.FromParam(p)
		if err != nil {
			return nil, err
		}
		all = append(all, Arg(a))
	}

	if cfg.Description == "" {
		cfg.Description = docstring.Summary(sig.Doc)
	}
	return New(cfg, all...)
}
