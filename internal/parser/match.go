package parser

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/grouper"
	"github.com/specialistvlad/declparse/internal/namespace"
)

var negativeNumber = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// looksLikeOption reports whether a token should be read as a flag. A lone
// dash and negative numbers are values.
func looksLikeOption(token string) bool {
	return len(token) > 1 && token[0] == '-' && !negativeNumber.MatchString(token)
}

type indexed struct {
	pos   int
	token string
}

// matcher assigns the tokens of one node to the arguments in its scope.
type matcher struct {
	node *Node
	ns   *namespace.Namespace
	args []*argument.Argument
}

// match consumes the options, then distributes what is left over the
// positionals. Tokens that fit nowhere are returned in input order.
func (m *matcher) match(tokens []string) ([]string, error) {
	var unknown, positional []indexed

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == grouper.Terminator {
			for j := i + 1; j < len(tokens); j++ {
				positional = append(positional, indexed{j, tokens[j]})
			}
			break
		}
		if !looksLikeOption(token) {
			positional = append(positional, indexed{i, token})
			continue
		}

		last, known, err := m.option(tokens, i)
		if err != nil {
			return nil, err
		}
		if !known {
			unknown = append(unknown, indexed{i, token})
		}
		i = last
	}

	rest, err := m.positionals(positional)
	if err != nil {
		return nil, err
	}
	unknown = append(unknown, rest...)
	slices.SortFunc(unknown, func(a, b indexed) int { return a.pos - b.pos })

	out := make([]string, len(unknown))
	for i, u := range unknown {
		out[i] = u.token
	}
	return out, nil
}

// option handles the flag at tokens[i] and returns the index of the last
// token it consumed.
func (m *matcher) option(tokens []string, i int) (int, bool, error) {
	token := tokens[i]

	if strings.HasPrefix(token, "--") {
		name, value, hasValue := strings.Cut(token[2:], "=")
		a, err := m.long(name)
		if err != nil || a == nil {
			return i, false, err
		}
		last, err := m.consume(a, tokens, i, value, hasValue)
		return last, true, err
	}

	r, size := utf8.DecodeRuneInString(token[1:])
	a := m.short(string(r))
	if a == nil {
		return i, false, nil
	}
	rest := token[1+size:]

	// -vvv and -vx VALUE: flags without values can be clustered.
	for !a.TakesValue() && rest != "" && !strings.HasPrefix(rest, "=") {
		if err := m.apply(a); err != nil {
			return i, true, err
		}
		r, size = utf8.DecodeRuneInString(rest)
		next := m.short(string(r))
		if next == nil {
			return i, true, m.node.failf(KindUsage, "argument %s: ignored explicit argument '%s'", display(a), rest)
		}
		a, rest = next, rest[size:]
	}

	value, hasValue := rest, rest != ""
	if strings.HasPrefix(value, "=") {
		value = value[1:]
	}
	last, err := m.consume(a, tokens, i, value, hasValue)
	return last, true, err
}

func (m *matcher) long(name string) (*argument.Argument, error) {
	if name == "" {
		return nil, nil
	}
	var candidates []*argument.Argument
	for _, a := range m.args {
		if a.Positional() {
			continue
		}
		if a.Name == name {
			return a, nil
		}
		if strings.HasPrefix(a.Name, name) {
			candidates = append(candidates, a)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = "--" + c.Name
		}
		return nil, m.node.failf(KindUsage, "ambiguous option: --%s could match %s", name, strings.Join(names, ", "))
	}
}

func (m *matcher) short(alias string) *argument.Argument {
	for _, a := range m.args {
		if !a.Positional() && a.Short != "" && a.Short == alias {
			return a
		}
	}
	return nil
}

func (m *matcher) consume(a *argument.Argument, tokens []string, i int, explicit string, hasExplicit bool) (int, error) {
	if !a.TakesValue() {
		if hasExplicit {
			return i, m.node.failf(KindUsage, "argument %s: ignored explicit argument '%s'", display(a), explicit)
		}
		return i, m.apply(a)
	}

	last := i
	var values []string
	if hasExplicit {
		values = []string{explicit}
	} else {
		for j := i + 1; j < len(tokens); j++ {
			if tokens[j] == grouper.Terminator || looksLikeOption(tokens[j]) {
				break
			}
			if !a.Nargs.Unbounded() && len(values) >= a.Nargs.Max() {
				break
			}
			values = append(values, tokens[j])
			last = j
		}
	}

	if len(values) < a.Nargs.Min() {
		return last, m.node.failf(KindUsage, "argument %s: %s", display(a), arity(a.Nargs))
	}
	return last, m.store(a, values)
}

// positionals hands the tokens to the required arguments in declaration
// order, keeping enough for the minimum of every later one.
func (m *matcher) positionals(tokens []indexed) ([]indexed, error) {
	var positional []*argument.Argument
	for _, a := range m.args {
		if a.Positional() {
			positional = append(positional, a)
		}
	}

	var missing []string
	for k, a := range positional {
		reserve := 0
		for _, later := range positional[k+1:] {
			reserve += later.Nargs.Min()
		}
		take := len(tokens) - reserve
		if take < a.Nargs.Min() {
			take = min(a.Nargs.Min(), len(tokens))
		}
		if !a.Nargs.Unbounded() && take > a.Nargs.Max() {
			take = a.Nargs.Max()
		}

		switch {
		case take == 0 && a.Nargs.Min() > 0:
			missing = append(missing, a.Name)
			continue
		case take < a.Nargs.Min():
			return nil, m.node.failf(KindUsage, "argument %s: %s", display(a), arity(a.Nargs))
		case take == 0:
			if a.Nargs.IsList() && a.Default == nil {
				m.ns.Set(a.Name, []any{})
			}
			continue
		}

		values := make([]string, take)
		for i := 0; i < take; i++ {
			values[i] = tokens[i].token
		}
		tokens = tokens[take:]
		if err := m.store(a, values); err != nil {
			return nil, err
		}
	}

	if len(missing) > 0 {
		return nil, m.node.failf(KindMissingRequired, "missing required arguments: %s", strings.Join(missing, ", "))
	}
	return tokens, nil
}

// store converts the values of a Store or Append argument.
func (m *matcher) store(a *argument.Argument, values []string) error {
	converted := make([]any, len(values))
	for i, token := range values {
		v, err := m.convert(a, token)
		if err != nil {
			return err
		}
		converted[i] = v
	}

	var value any
	switch {
	case len(values) == 0 && !a.Nargs.IsList():
		value = a.Const
	case a.Nargs.IsList():
		value = converted
	default:
		value = converted[0]
	}

	if a.Action == argument.Append {
		list, _ := m.ns.Value(a.Name).([]any)
		m.ns.Set(a.Name, append(list, value))
		return nil
	}
	m.ns.Set(a.Name, value)
	return nil
}

func (m *matcher) convert(a *argument.Argument, token string) (any, error) {
	v, err := a.Type.Convert(token)
	if err != nil {
		var typeErr *convert.TypeError
		if errors.As(err, &typeErr) {
			return nil, m.node.newError(KindTypeConversion, fmt.Sprintf("argument %s: %s", display(a), typeErr.Msg), err)
		}
		return nil, m.node.newError(KindTypeConversion,
			fmt.Sprintf("argument %s: invalid %s value: '%s'", display(a), a.Type.Name, token), err)
	}
	if !a.IsChoice(v) {
		choices := make([]string, len(a.Choices))
		for i, c := range a.Choices {
			choices[i] = fmt.Sprintf("'%v'", c)
		}
		return nil, m.node.failf(KindUsage, "argument %s: invalid choice: '%s' (choose from %s)",
			display(a), token, strings.Join(choices, ", "))
	}
	return v, nil
}

// apply runs an argument that takes no value.
func (m *matcher) apply(a *argument.Argument) error {
	switch a.Action {
	case argument.StoreTrue:
		m.ns.Set(a.Name, true)
	case argument.StoreFalse:
		m.ns.Set(a.Name, false)
	case argument.StoreConst:
		m.ns.Set(a.Name, a.Const)
	case argument.Count:
		count, _ := m.ns.Value(a.Name).(int)
		m.ns.Set(a.Name, count+1)
	case argument.Callback, argument.Version:
		if err := a.Callback(m.ns); err != nil {
			return m.node.fail(KindValidation, err)
		}
		if a.Exit {
			return &argument.Exit{Code: 0}
		}
	}
	return nil
}

func display(a *argument.Argument) string {
	return strings.Join(a.FlagTokens(), "/")
}

func arity(n argument.Nargs) string {
	switch {
	case n == argument.One:
		return "expected one argument"
	case n == argument.Optional:
		return "expected at most one argument"
	case n == argument.OneOrMore:
		return "expected at least one argument"
	default:
		return fmt.Sprintf("expected %d arguments", n.Min())
	}
}
