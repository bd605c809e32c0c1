// This file turns HCL type expressions (`string`, `list(number)`) into the
// converter and arity of an argument.

package declare

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/ctxlog"
)

// typeExprToCtyType converts an HCL type expression into its cty.Type equivalent.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a function call.", "call", v.Name)
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, set) require exactly one argument, got %d", len(v.Args))
		}
		elementType, err := typeExprToCtyType(ctx, v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		if !elementType.IsPrimitiveType() && elementType != cty.DynamicPseudoType {
			return cty.DynamicPseudoType, fmt.Errorf("collection elements must be primitive, got %s", elementType.FriendlyName())
		}
		switch v.Name {
		case "list":
			return cty.List(elementType), nil
		case "set":
			return cty.Set(elementType), nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a primitive.", "keyword", rootName)
		switch rootName {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", rootName)
		}

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// argumentType derives the converter of an argument from its type
// expression. Collection types read one token per element, so they also
// imply "*" when the declaration sets no nargs.
func argumentType(ctx context.Context, expr hcl.Expression) (convert.Type, argument.Nargs, error) {
	if !isExprDefined(ctx, expr, "type") {
		return convert.Type{}, argument.Nargs{}, nil
	}
	ty, err := typeExprToCtyType(ctx, expr)
	if err != nil {
		return convert.Type{}, argument.Nargs{}, err
	}

	var nargs argument.Nargs
	if ty.IsListType() || ty.IsSetType() {
		ty = ty.ElementType()
		nargs = argument.ZeroOrMore
	}
	t, err := convert.FromCty(ty)
	if err != nil {
		return convert.Type{}, argument.Nargs{}, err
	}
	return t, nargs, nil
}
