// Package convert turns raw command-line tokens into typed values. The
// primitive conversions are delegated to go-cty so that declarations loaded
// from HCL and declarations written in Go share one set of conversion rules.
package convert

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	ctyconvert "github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Type is a named token converter. Name appears in error messages
// ("invalid int value: 'x'") and Format is the inverse used when rendering a
// namespace back into flags.
type Type struct {
	Name   string
	Parse  func(token string) (any, error)
	Format func(value any) string
}

// Convert runs the converter.
func (t Type) Convert(token string) (any, error) {
	if t.Parse == nil {
		return token, nil
	}
	return t.Parse(token)
}

// Render formats a converted value back into a single token.
func (t Type) Render(v any) string {
	if t.Format != nil {
		return t.Format(v)
	}
	return fmt.Sprint(v)
}

// IsZero reports whether the converter was never set.
func (t Type) IsZero() bool {
	return t.Name == "" && t.Parse == nil
}

// TypeError is raised by a converter that wants its message reported verbatim
// instead of the generic "invalid <type> value" wording.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return e.Msg
}

// Errorf builds a TypeError.
func Errorf(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// String keeps the token unchanged.
var String = Type{
	Name:  "str",
	Parse: func(s string) (any, error) { return s, nil },
}

// Int parses a whole number.
var Int = Type{
	Name: "int",
	Parse: func(s string) (any, error) {
		var i int
		if err := fromToken(s, cty.Number, &i); err != nil {
			return nil, err
		}
		return i, nil
	},
}

// Float parses any number.
var Float = Type{
	Name: "float",
	Parse: func(s string) (any, error) {
		var f float64
		if err := fromToken(s, cty.Number, &f); err != nil {
			return nil, err
		}
		return f, nil
	},
}

// Bool parses "true" or "false".
var Bool = Type{
	Name: "bool",
	Parse: func(s string) (any, error) {
		var b bool
		if err := fromToken(s, cty.Bool, &b); err != nil {
			return nil, err
		}
		return b, nil
	},
}

// PositiveInt parses a whole number that is not negative.
var PositiveInt = Type{
	Name: "positive_int",
	Parse: func(s string) (any, error) {
		v, err := Int.Parse(s)
		if err != nil {
			return nil, err
		}
		if v.(int) < 0 {
			return nil, fmt.Errorf("indices need to be positive integers")
		}
		return v, nil
	},
}

// fromToken converts a token to the wanted cty type and then into a Go value.
func fromToken(token string, ty cty.Type, target any) error {
	val, err := ctyconvert.Convert(cty.StringVal(token), ty)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(val, target)
}

// FromCty builds a converter for a primitive cty type, as used by HCL
// declarations. Whole numbers become int, other numbers float64; the dynamic
// type keeps tokens as strings.
func FromCty(ty cty.Type) (Type, error) {
	switch {
	case ty == cty.String || ty == cty.DynamicPseudoType:
		return String, nil
	case ty == cty.Bool:
		return Bool, nil
	case ty == cty.Number:
		return Type{
			Name: "number",
			Parse: func(s string) (any, error) {
				val, err := ctyconvert.Convert(cty.StringVal(s), cty.Number)
				if err != nil {
					return nil, err
				}
				return NativeNumber(val), nil
			},
		}, nil
	default:
		return Type{}, fmt.Errorf("type %s cannot be read from a single token", ty.FriendlyName())
	}
}

// NativeNumber converts a known cty number to int when it is whole and fits,
// otherwise to float64.
func NativeNumber(val cty.Value) any {
	bf := val.AsBigFloat()
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return int(i)
		}
	}
	f, _ := bf.Float64()
	return f
}

// ToNative converts a cty value into its natural Go counterpart: strings,
// bools, int or float64 numbers, []any for sequences and map[string]any for
// objects and maps.
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return NativeNumber(v), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
