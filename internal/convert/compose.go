package convert

import (
	"fmt"
	"strings"
)

// DSV parses delimiter separated values, converting each item with elem.
func DSV(elem Type, delimiter string) Type {
	if delimiter == "" {
		delimiter = ","
	}
	return Type{
		Name: fmt.Sprintf("dsv(%s)", elem.Name),
		Parse: func(s string) (any, error) {
			parts := strings.Split(s, delimiter)
			out := make([]any, 0, len(parts))
			for _, part := range parts {
				v, err := elem.Convert(part)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		},
		Format: func(v any) string {
			items, ok := v.([]any)
			if !ok {
				return fmt.Sprint(v)
			}
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = elem.Render(item)
			}
			return strings.Join(parts, delimiter)
		},
	}
}

// OneOf tries each converter in order and keeps the first success. The order
// matters when more than one type accepts the token.
func OneOf(types ...Type) Type {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	joined := strings.Join(names, ", ")

	return Type{
		Name: fmt.Sprintf("one_of(%s)", joined),
		Parse: func(s string) (any, error) {
			failures := make([]string, 0, len(types))
			for _, t := range types {
				v, err := t.Convert(s)
				if err == nil {
					return v, nil
				}
				failures = append(failures, fmt.Sprintf("%s: %v", t.Name, err))
			}
			return nil, Errorf(
				"argument %s does not match any of allowed types: %s.\nThe following errors were raised:\n\t%s",
				s, joined, strings.Join(failures, "\n\t"),
			)
		},
	}
}

// requireLen checks the item count of a split token, like an n-tuple.
func requireLen(items []*int, n int) error {
	if len(items) != n {
		return fmt.Errorf("%d-tuple requires exactly %d items (%d received)", n, n, len(items))
	}
	return nil
}

// NTuple is a DSV that must hold exactly n items.
func NTuple(n int, elem Type, delimiter string) Type {
	list := DSV(elem, delimiter)
	return Type{
		Name: fmt.Sprintf("tuple%d(%s)", n, elem.Name),
		Parse: func(s string) (any, error) {
			v, err := list.Parse(s)
			if err != nil {
				return nil, err
			}
			if items := v.([]any); len(items) != n {
				return nil, Errorf("%d-tuple requires exactly %d items (%d received)", n, n, len(items))
			}
			return v, nil
		},
		Format: list.Format,
	}
}
