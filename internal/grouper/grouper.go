// Package grouper splits a flat token list into the segment owned by the
// current parser node and one segment per sub-parser named in the input.
package grouper

import "slices"

// Terminator ends option processing; after it no token opens a group.
const Terminator = "--"

// Groups is the result of Group.
type Groups struct {
	// Own holds the tokens that appeared before the first sub-parser name.
	Own []string

	groups map[string][]string
	order  []string
}

// Group scans tokens left to right. A token equal to one of names opens
// (or re-opens) that name's group; following tokens belong to it until the
// next name. Repeated names append to the same group. A literal "--" stops
// the scan and the rest of the input, terminator included, stays in the
// segment that was open.
func Group(tokens []string, names []string) Groups {
	g := Groups{Own: []string{}, groups: make(map[string][]string)}
	current := ""
	terminated := false

	for _, token := range tokens {
		if token == Terminator {
			terminated = true
		}
		if !terminated && slices.Contains(names, token) {
			current = token
			if _, ok := g.groups[token]; !ok {
				g.groups[token] = []string{}
				g.order = append(g.order, token)
			}
			continue
		}
		if current == "" {
			g.Own = append(g.Own, token)
		} else {
			g.groups[current] = append(g.groups[current], token)
		}
	}
	return g
}

// Present reports whether name appeared in the input, even with no tokens.
func (g Groups) Present(name string) bool {
	_, ok := g.groups[name]
	return ok
}

// Tokens returns the group of name, or nil when the name never appeared.
func (g Groups) Tokens(name string) []string {
	return g.groups[name]
}

// Names lists the present names in order of first appearance.
func (g Groups) Names() []string {
	return slices.Clone(g.order)
}
