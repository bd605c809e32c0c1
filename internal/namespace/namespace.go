// Package namespace holds the result of a parse pass: an ordered mapping from
// field name to value, one per parser node. Non-lifted sub-parsers nest their
// own Namespace under their attachment name; a skipped sub-parser is stored
// as a nil value so callers can tell "absent" from "present with defaults".
package namespace

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/specialistvlad/declparse/internal/fieldpath"
)

// Namespace is an ordered field map. The zero value is not usable; call New.
type Namespace struct {
	keys   []string
	values map[string]any
}

// New creates an empty Namespace.
func New() *Namespace {
	return &Namespace{values: make(map[string]any)}
}

// FromMap creates a Namespace from a plain map. Keys are sorted so the
// result is deterministic; nested maps become nested namespaces.
func FromMap(m map[string]any) *Namespace {
	ns := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if sub, ok := m[k].(map[string]any); ok {
			ns.Set(k, FromMap(sub))
			continue
		}
		ns.Set(k, m[k])
	}
	return ns
}

// Set writes a field, keeping the position of an existing key.
func (n *Namespace) Set(name string, value any) {
	if _, ok := n.values[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.values[name] = value
}

// Get returns a field and whether it exists.
func (n *Namespace) Get(name string) (any, bool) {
	v, ok := n.values[name]
	return v, ok
}

// Value returns a field, or nil when it does not exist.
func (n *Namespace) Value(name string) any {
	return n.values[name]
}

// Has reports whether the field exists (a skipped sub-parser exists with a nil value).
func (n *Namespace) Has(name string) bool {
	_, ok := n.values[name]
	return ok
}

// Sub returns the nested namespace stored under name, or nil when the field
// is missing, skipped, or not a namespace.
func (n *Namespace) Sub(name string) *Namespace {
	sub, _ := n.values[name].(*Namespace)
	return sub
}

// Delete removes a field.
func (n *Namespace) Delete(name string) {
	if _, ok := n.values[name]; !ok {
		return
	}
	delete(n.values, name)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == name })
}

// Keys returns the field names in insertion order.
func (n *Namespace) Keys() []string {
	return slices.Clone(n.keys)
}

// Len returns the number of fields.
func (n *Namespace) Len() int {
	return len(n.keys)
}

// Merge copies every field of other into n, flattening rather than nesting.
func (n *Namespace) Merge(other *Namespace) {
	if other == nil || other == n {
		return
	}
	for _, k := range other.keys {
		n.Set(k, other.values[k])
	}
}

// Clone returns a copy of n. Nested namespaces are cloned too; other values
// are copied as-is.
func (n *Namespace) Clone() *Namespace {
	out := New()
	for _, k := range n.keys {
		if sub, ok := n.values[k].(*Namespace); ok && sub != nil {
			out.Set(k, sub.Clone())
			continue
		}
		out.Set(k, n.values[k])
	}
	return out
}

// ToMap converts the namespace tree to plain nested maps.
func (n *Namespace) ToMap() map[string]any {
	out := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		switch v := n.values[k].(type) {
		case *Namespace:
			if v == nil {
				out[k] = nil
				continue
			}
			out[k] = v.ToMap()
		default:
			out[k] = v
		}
	}
	return out
}

// Lookup resolves a field path such as "output.scale" or "counts[1]".
func (n *Namespace) Lookup(raw string) (any, error) {
	path, err := fieldpath.Parse(raw)
	if err != nil {
		return nil, err
	}
	return n.LookupPath(path)
}

// LookupPath resolves an already parsed field path.
func (n *Namespace) LookupPath(path *fieldpath.Path) (any, error) {
	current := n
	var value any
	for i, seg := range path.Segments {
		if current == nil {
			return nil, fmt.Errorf("field %q: %q is not a namespace", path, segmentsString(path.Segments[:i]))
		}
		v, ok := current.Get(seg.Name)
		if !ok {
			return nil, fmt.Errorf("field %q: no field named %q", path, seg.Name)
		}
		if seg.HasIndex() {
			indexed, err := index(v, seg.Index)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", path, err)
			}
			v = indexed
		}
		value = v
		current, _ = v.(*Namespace)
	}
	return value, nil
}

func index(v any, i int) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("cannot index a value of type %T", v)
	}
	if i >= rv.Len() {
		return nil, fmt.Errorf("index %d out of range (length %d)", i, rv.Len())
	}
	return rv.Index(i).Interface(), nil
}

func segmentsString(segs []fieldpath.Segment) string {
	p := &fieldpath.Path{Segments: segs}
	return p.String()
}

// String renders the namespace in a compact, argparse-like form.
func (n *Namespace) String() string {
	if n == nil {
		return "None"
	}
	parts := make([]string, 0, len(n.keys))
	for _, k := range n.keys {
		v := n.values[k]
		if v == nil {
			parts = append(parts, k+"=None")
			continue
		}
		if s, ok := v.(string); ok {
			parts = append(parts, fmt.Sprintf("%s=%q", k, s))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return "Namespace(" + strings.Join(parts, ", ") + ")"
}
