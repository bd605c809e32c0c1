package argument

import (
	"fmt"
	"strconv"
)

// Nargs is the arity of an argument: how many tokens it consumes and whether
// the stored value is a list. The zero value means "not set".
type Nargs struct {
	min, max int // max < 0 is unbounded
	list     bool
	symbol   string
}

var (
	// One consumes exactly one token and stores it as a scalar.
	One = Nargs{min: 1, max: 1, symbol: "1"}
	// Optional consumes zero or one token ("?").
	Optional = Nargs{min: 0, max: 1, symbol: "?"}
	// ZeroOrMore consumes any number of tokens into a list ("*").
	ZeroOrMore = Nargs{min: 0, max: -1, list: true, symbol: "*"}
	// OneOrMore consumes at least one token into a list ("+").
	OneOrMore = Nargs{min: 1, max: -1, list: true, symbol: "+"}
)

// Exactly consumes n tokens into a list.
func Exactly(n int) Nargs {
	return Nargs{min: n, max: n, list: true, symbol: strconv.Itoa(n)}
}

// ParseNargs reads the declaration spelling: "?", "*", "+" or a count.
func ParseNargs(s string) (Nargs, error) {
	switch s {
	case "":
		return Nargs{}, nil
	case "?":
		return Optional, nil
	case "*":
		return ZeroOrMore, nil
	case "+":
		return OneOrMore, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Nargs{}, fmt.Errorf("invalid nargs %q: expected '?', '*', '+' or a positive count", s)
	}
	return Exactly(n), nil
}

func (n Nargs) Min() int { return n.min }
func (n Nargs) Max() int { return n.max }
func (n Nargs) IsList() bool { return n.list }
func (n Nargs) IsZero() bool { return n.symbol == "" }
func (n Nargs) Unbounded() bool { return n.max < 0 }

func (n Nargs) String() string {
	if n.symbol == "" {
		return "0"
	}
	return n.symbol
}
