package fieldpath

import (
	"slices"
	"strconv"
	"strings"
)

// String serializes the Path into its canonical representation.
func (p *Path) String() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range p.Segments {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteRune('[')
			sb.WriteString(strconv.Itoa(segment.Index))
			sb.WriteRune(']')
		}
	}

	return sb.String()
}

// Equal checks for deep equality between two Path pointers.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return slices.Equal(p.Segments, other.Segments)
}

// Child returns a new path extended by one plain segment.
func (p *Path) Child(name string) *Path {
	out := &Path{}
	if p != nil {
		out.Segments = append(out.Segments, p.Segments...)
	}
	out.Segments = append(out.Segments, NewSegment(name))
	return out
}
