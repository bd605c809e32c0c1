package parser

import (
	"reflect"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/namespace"
)

// Render turns a namespace produced by this node back into command-line
// tokens. Parsing the result yields the same namespace, as long as no
// value itself looks like a flag or a sub-parser name. Fields that are not
// arguments (set by Defaults or a Produce hook) are not rendered.
func (n *Node) Render(ns *namespace.Namespace) []string {
	if ns == nil {
		return nil
	}
	var out []string
	for _, a := range n.Arguments() {
		if a.Positional() {
			out = append(out, renderValues(a, ns.Value(a.Name))...)
		}
	}
	for _, a := range n.Arguments() {
		if !a.Positional() {
			out = append(out, renderFlag(a, ns.Value(a.Name))...)
		}
	}
	return append(out, n.renderChildren(ns)...)
}

func (n *Node) renderChildren(ns *namespace.Namespace) []string {
	var out []string
	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			out = append(out, ch.node.renderChildren(ns)...)
			continue
		}
		sub := ns.Sub(ch.name)
		if sub == nil {
			continue
		}
		out = append(out, ch.name)
		out = append(out, ch.node.Render(sub)...)
	}
	return out
}

func renderValues(a *argument.Argument, v any) []string {
	if v == nil {
		return nil
	}
	if list, ok := v.([]any); ok && a.Nargs.IsList() {
		out := make([]string, len(list))
		for i, item := range list {
			out[i] = a.Type.Render(item)
		}
		return out
	}
	return []string{a.Type.Render(v)}
}

func renderFlag(a *argument.Argument, v any) []string {
	long := "--" + a.Name
	switch a.Action {
	case argument.StoreTrue, argument.StoreFalse, argument.StoreConst:
		if reflect.DeepEqual(v, a.Default) {
			return nil
		}
		want := a.Const
		switch a.Action {
		case argument.StoreTrue:
			want = true
		case argument.StoreFalse:
			want = false
		}
		if !reflect.DeepEqual(v, want) {
			return nil
		}
		return []string{long}
	case argument.Count:
		count, _ := v.(int)
		base, _ := a.Default.(int)
		var out []string
		for i := 0; i < count-base; i++ {
			out = append(out, long)
		}
		return out
	case argument.Append:
		list, _ := v.([]any)
		base, _ := a.Default.([]any)
		if len(list) < len(base) {
			return nil
		}
		var out []string
		for _, item := range list[len(base):] {
			out = append(out, long)
			out = append(out, renderValues(a, item)...)
		}
		return out
	case argument.Callback, argument.Version:
		return nil
	}

	if a.Nargs == argument.Optional && reflect.DeepEqual(v, a.Const) && !reflect.DeepEqual(v, a.Default) {
		return []string{long}
	}
	if v == nil {
		return nil
	}
	if a.Nargs.IsList() {
		return append([]string{long}, renderValues(a, v)...)
	}
	return []string{long + "=" + a.Type.Render(v)}
}
