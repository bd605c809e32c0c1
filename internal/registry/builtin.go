package registry

import "github.com/specialistvlad/declparse/internal/convert"

// Builtin registers the standard converters under the names they report in
// error messages, plus comma separated lists of the primitive ones.
type Builtin struct{}

// Register implements Module.
func (Builtin) Register(r *Registry) {
	for _, t := range []convert.Type{
		convert.String,
		convert.Int,
		convert.Float,
		convert.Bool,
		convert.PositiveInt,
		convert.Indices,
		convert.Slice,
		convert.Range,
	} {
		r.RegisterConverter(t.Name, t)
	}
	r.RegisterConverter("ints", convert.DSV(convert.Int, ","))
	r.RegisterConverter("floats", convert.DSV(convert.Float, ","))
	r.RegisterConverter("strs", convert.DSV(convert.String, ","))
	r.RegisterConverter("pair", convert.NTuple(2, convert.String, ","))
}
