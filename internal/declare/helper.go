package declare

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder fills omitted optional expressions with zero-width
// placeholders, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"is_defined", defined,
	)
	return defined
}

// literal evaluates a constant expression into a Go value. Declarations have
// no variables or functions in scope.
func literal(ctx context.Context, expr hcl.Expression, attrName string) (any, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute '%s': %w", attrName, diags)
	}
	native, err := convert.ToNative(val)
	if err != nil {
		return nil, fmt.Errorf("attribute '%s': %w", attrName, err)
	}
	return native, nil
}

// literalList evaluates an expression that must be a list or tuple.
func literalList(ctx context.Context, expr hcl.Expression, attrName string) ([]any, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute '%s': %w", attrName, diags)
	}
	ty := val.Type()
	if !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) || val.IsNull() {
		return nil, fmt.Errorf("attribute '%s' must be a list, got %s", attrName, ty.FriendlyName())
	}
	native, err := convert.ToNative(val)
	if err != nil {
		return nil, fmt.Errorf("attribute '%s': %w", attrName, err)
	}
	return native.([]any), nil
}

// literalObject evaluates an expression that must be an object or map.
func literalObject(ctx context.Context, expr hcl.Expression, attrName string) (map[string]any, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute '%s': %w", attrName, diags)
	}
	ty := val.Type()
	if !(ty.IsObjectType() || ty.IsMapType()) || val.IsNull() {
		return nil, fmt.Errorf("attribute '%s' must be an object, got %s", attrName, ty.FriendlyName())
	}
	native, err := convert.ToNative(val)
	if err != nil {
		return nil, fmt.Errorf("attribute '%s': %w", attrName, err)
	}
	return native.(map[string]any), nil
}
