package app

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/declparse/internal/namespace"
)

// Write renders v, a namespace or a single value looked up in one, in the
// given output format. Callback functions stored as defaults are left out.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case OutputText, "":
		return writeText(w, v)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plain(v))
	case OutputYAML:
		node, err := yamlNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	case OutputHCL:
		return writeHCL(w, v)
	case OutputCBOR:
		mode, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return fmt.Errorf("failed to create CBOR encoder: %w", err)
		}
		data, err := mode.Marshal(plain(v))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	if ns, ok := v.(*namespace.Namespace); ok {
		_, err := fmt.Fprintln(w, ns.String())
		return err
	}
	_, err := fmt.Fprintln(w, plain(v))
	return err
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// plain converts v into nil, strings, bools, numbers, []any and
// map[string]any. Values of other types are written with their String
// method or fmt.Sprint.
func plain(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *namespace.Namespace:
		if x == nil {
			return nil
		}
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			if val := x.Value(k); !isFunc(val) {
				out[k] = plain(val)
			}
		}
		return out
	case string, bool, int, int64, float64:
		return x
	case []any:
		out := make([]any, 0, len(x))
		for _, item := range x {
			if !isFunc(item) {
				out = append(out, plain(item))
			}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			if !isFunc(item) {
				out[k] = plain(item)
			}
		}
		return out
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// yamlNode keeps the field order of namespaces, which a plain map would lose.
func yamlNode(v any) (*yaml.Node, error) {
	ns, ok := v.(*namespace.Namespace)
	if !ok || ns == nil {
		node := &yaml.Node{}
		return node, node.Encode(plain(v))
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range ns.Keys() {
		val := ns.Value(k)
		if isFunc(val) {
			continue
		}
		child, err := yamlNode(val)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, child)
	}
	return node, nil
}

// writeHCL writes a namespace as attributes, with sub-namespaces as nested
// blocks. A single value is written as a "value" attribute.
func writeHCL(w io.Writer, v any) error {
	f := hclwrite.NewEmptyFile()
	ns, ok := v.(*namespace.Namespace)
	if ok && ns != nil {
		writeBody(f.Body(), ns)
	} else {
		f.Body().SetAttributeValue("value", toCty(plain(v)))
	}
	_, err := w.Write(f.Bytes())
	return err
}

// writeBody puts the attributes of ns before its blocks.
func writeBody(body *hclwrite.Body, ns *namespace.Namespace) {
	var blocks []string
	for _, k := range ns.Keys() {
		val := ns.Value(k)
		if sub, ok := val.(*namespace.Namespace); ok && sub != nil {
			blocks = append(blocks, k)
			continue
		}
		if isFunc(val) {
			continue
		}
		body.SetAttributeValue(k, toCty(plain(val)))
	}
	for _, k := range blocks {
		writeBody(body.AppendNewBlock(k, nil).Body(), ns.Sub(k))
	}
}

// toCty converts a plain value into cty. Sequences become tuples so that
// mixed element types stay representable.
func toCty(v any) cty.Value {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(x)
	case bool:
		return cty.BoolVal(x)
	case int:
		return cty.NumberIntVal(int64(x))
	case int64:
		return cty.NumberIntVal(x)
	case float64:
		return cty.NumberFloatVal(x)
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal
		}
		items := make([]cty.Value, len(x))
		for i, item := range x {
			items[i] = toCty(item)
		}
		return cty.TupleVal(items)
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, item := range x {
			attrs[k] = toCty(item)
		}
		return cty.ObjectVal(attrs)
	default:
		return cty.StringVal(fmt.Sprint(x))
	}
}
