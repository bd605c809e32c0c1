package convert

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Subset selects positions out of a sequence. Indices, Slice and Range are
// accepted on the command line and applied later to data of any element type.
type Subset interface {
	// Positions returns the selected positions for a sequence of the given length.
	Positions(length int) []int
	String() string
}

// Select applies a subset to items.
func Select[T any](s Subset, items []T) []T {
	positions := s.Positions(len(items))
	out := make([]T, 0, len(positions))
	for _, p := range positions {
		out = append(out, items[p])
	}
	return out
}

// splitItems splits a token on sep and converts every non-empty part to an
// int; empty parts become nil. When required is set, the separator must occur.
func splitItems(kind, token, sep string, required bool, item func(string) (int, error)) ([]*int, error) {
	if required && !strings.Contains(token, sep) {
		return nil, Errorf("given string %s does not look like a %s (no %s, which is required)", token, kind, sep)
	}
	parts := strings.Split(token, sep)
	out := make([]*int, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		v, err := item(part)
		if err != nil {
			return nil, &TypeError{Msg: err.Error()}
		}
		out[i] = &v
	}
	return out, nil
}

func atoi(s string) (int, error) {
	v, err := Int.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid literal for int: '%s'", s)
	}
	return v.(int), nil
}

func positiveAtoi(s string) (int, error) {
	v, err := atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("indices need to be positive integers")
	}
	return v, nil
}

// IndexSet is a set of explicit, non-negative positions ("0,2,5").
type IndexSet struct {
	set []int
}

// Positions keeps every position of the set that exists in the sequence.
func (s IndexSet) Positions(length int) []int {
	out := make([]int, 0, len(s.set))
	for _, p := range s.set {
		if p < length {
			out = append(out, p)
		}
	}
	return out
}

func (s IndexSet) String() string {
	parts := make([]string, len(s.set))
	for i, p := range s.set {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// SliceSpec follows the semantics of a python slice: optional start, stop and
// step, negative values counting from the end.
type SliceSpec struct {
	Start, Stop, Step *int
	sep               string
}

// Positions resolves the slice against a sequence length.
func (s SliceSpec) Positions(length int) []int {
	step := 1
	if s.Step != nil {
		step = *s.Step
	}

	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}

	clamp := func(v *int, fallback int) int {
		if v == nil {
			return fallback
		}
		x := *v
		if x < 0 {
			x += length
			if x < lower {
				x = lower
			}
		} else if x > upper {
			x = upper
		}
		return x
	}

	var start, stop int
	if step < 0 {
		start, stop = clamp(s.Start, upper), clamp(s.Stop, lower)
	} else {
		start, stop = clamp(s.Start, lower), clamp(s.Stop, upper)
	}

	var out []int
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		out = append(out, i)
	}
	return out
}

func (s SliceSpec) String() string {
	render := func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	}
	parts := []string{render(s.Start), render(s.Stop)}
	if s.Step != nil {
		parts = append(parts, render(s.Step))
	}
	sep := s.sep
	if sep == "" {
		sep = ":"
	}
	return strings.Join(parts, sep)
}

func formatSubset(v any) string {
	if s, ok := v.(Subset); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// Indices parses a comma separated set of positions, each used once.
var Indices = Type{
	Name: "indices",
	Parse: func(s string) (any, error) {
		items, err := splitItems("Indices", s, ",", false, positiveAtoi)
		if err != nil {
			return nil, err
		}
		set := make([]int, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			if !slices.Contains(set, *item) {
				set = append(set, *item)
			}
		}
		slices.Sort(set)
		return IndexSet{set: set}, nil
	},
	Format: formatSubset,
}

// Slice parses "start:stop[:step]"; the colon is required.
var Slice = Type{
	Name: "slice",
	Parse: func(s string) (any, error) {
		items, err := splitItems("Slice", s, ":", true, atoi)
		if err != nil {
			return nil, err
		}
		if len(items) != 2 && len(items) != 3 {
			return nil, Errorf("%v; %v", requireLen(items, 2), requireLen(items, 3))
		}
		spec := SliceSpec{Start: items[0], Stop: items[1], sep: ":"}
		if len(items) == 3 {
			spec.Step = items[2]
			if spec.Step != nil && *spec.Step == 0 {
				return nil, Errorf("slice step cannot be zero")
			}
		}
		return spec, nil
	},
	Format: formatSubset,
}

// Range parses "start-stop". Negative numbers are not supported, and inputs
// such as "1-3-5" or "1--3" are rejected as ambiguous.
var Range = Type{
	Name: "range",
	Parse: func(s string) (any, error) {
		items, err := splitItems("Range", s, "-", true, atoi)
		if err != nil {
			return nil, err
		}
		if err := requireLen(items, 2); err != nil {
			return nil, &TypeError{Msg: err.Error()}
		}
		return SliceSpec{Start: items[0], Stop: items[1], sep: "-"}, nil
	},
	Format: formatSubset,
}
