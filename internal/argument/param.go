package argument

import "github.com/specialistvlad/declparse/internal/docstring"

// FromParam declares an argument for a documented parameter. Parameters
// without a default are required positionals.
func FromParam(p docstring.Param) (*Argument, error) {
	a := Argument{
		Name:     p.Name,
		Help:     p.Help,
		Type:     p.Type,
		Required: p.Required,
	}
	if !p.Required {
		a.Default = p.Default
	}
	return New(a)
}
