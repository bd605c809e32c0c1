package declare

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of a declaration file. Anything but parser
// blocks is rejected by the decoder.
type fileRoot struct {
	Parsers []*parserBlock `hcl:"parser,block"`
}

type parserBlock struct {
	Name         string  `hcl:"name,label"`
	Prog         *string `hcl:"prog,optional"`
	Description  *string `hcl:"description,optional"`
	Epilog       *string `hcl:"epilog,optional"`
	Help         *string `hcl:"help,optional"`
	Order        *string `hcl:"order,optional"`
	Lifted       *bool   `hcl:"lifted,optional"`
	SkipIfAbsent *bool   `hcl:"skip_if_absent,optional"`
	Validate     *string `hcl:"validate,optional"`
	Produce      *string `hcl:"produce,optional"`
	// Doc documents the arguments in one of the docstring styles; arguments
	// without help borrow their description from it.
	Doc      *string        `hcl:"doc,optional"`
	DocStyle *string        `hcl:"doc_style,optional"`
	Defaults hcl.Expression `hcl:"defaults,optional"`

	Arguments []*argumentBlock `hcl:"argument,block"`
	Parsers   []*parserBlock   `hcl:"parser,block"`
}

type argumentBlock struct {
	Name      string         `hcl:"name,label"`
	Short     *string        `hcl:"short,optional"`
	Required  *bool          `hcl:"required,optional"`
	Help      *string        `hcl:"help,optional"`
	Type      hcl.Expression `hcl:"type,optional"`
	Converter *string        `hcl:"converter,optional"`
	Default   hcl.Expression `hcl:"default,optional"`
	Choices   hcl.Expression `hcl:"choices,optional"`
	Nargs     *string        `hcl:"nargs,optional"`
	Action    *string        `hcl:"action,optional"`
	Const     hcl.Expression `hcl:"const,optional"`
	Metavar   *string        `hcl:"metavar,optional"`
	AsManyAs  *string        `hcl:"as_many_as,optional"`
	Callback  *string        `hcl:"callback,optional"`
	Exit      *bool          `hcl:"exit,optional"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
