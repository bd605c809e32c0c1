// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package argument provides the declarative descriptor of a single flag or
// positional value. An Argument is created once, when the parser tree is
// declared, and never changes afterwards; its parsed value lives in the
// namespace of the node that owns it.
//
// Why a separate descriptor package?
//
// The parser tree, the HCL declaration loader and the signature collaborator
// all produce Arguments. Keeping the descriptor free of parsing state lets a
// declared node be cloned into many trees without any of them observing the
// others' values.
package argument

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/namespace"
)

// Kind selects what a matched flag does to the namespace.
type Kind int

const (
	// Store converts the following token(s) and stores the result.
	Store Kind = iota
	// StoreTrue stores true when the flag is present.
	StoreTrue
	// StoreFalse stores false when the flag is present.
	StoreFalse
	// StoreConst stores Const when the flag is present.
	StoreConst
	// Append adds the converted value to a list on every occurrence.
	Append
	// Count counts occurrences of the flag.
	Count
	// Callback runs a side-effecting function; it consumes no value.
	Callback
	// Version reports Const as the program version and ends the parse pass.
	Version
)

var kindNames = map[Kind]string{
	Store:      "store",
	StoreTrue:  "store_true",
	StoreFalse: "store_false",
	StoreConst: "store_const",
	Append:     "append",
	Count:      "count",
	Callback:   "callback",
	Version:    "version",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the names used in declarations ("store_true", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return Store, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Store, fmt.Errorf("unknown action %q", s)
}

// takesValue reports whether the kind consumes tokens after the flag.
func (k Kind) takesValue() bool {
	return k == Store || k == Append
}

// ActionFunc is the zero-arity callback of a Callback argument. It may
// return *Exit to end the parse pass with a chosen status.
type ActionFunc func(ns *namespace.Namespace) error

// Argument describes one flag or positional value.
type Argument struct {
	Name     string
	Short    string // single character alias, optional arguments only
	Required bool   // required arguments are positional
	Help     string
	Default  any
	Type     convert.Type
	Choices  []any
	Nargs    Nargs
	Action   Kind
	Const    any
	Metavar  string
	AsManyAs string // name of a sibling whose value must have the same length
	Callback ActionFunc
	Exit     bool // end the parse pass after Callback ran

	validated bool
}

// New validates a declaration and fills in the defaults of its kind.
func New(a Argument) (*Argument, error) {
	if a.Name == "" {
		return nil, constructionErr(ErrInvalidDeclaration, "", "argument name cannot be empty")
	}
	if strings.HasPrefix(a.Name, "-") || strings.ContainsAny(a.Name, " \t=") {
		return nil, constructionErr(ErrInvalidDeclaration, a.Name, "argument name %q must be a bare identifier", a.Name)
	}
	if a.Short != "" {
		if a.Required {
			return nil, constructionErr(ErrInvalidShortAlias, a.Name,
				"short alias %q is useless for the required argument %q", a.Short, a.Name)
		}
		if utf8.RuneCountInString(a.Short) != 1 || a.Short == "-" {
			return nil, constructionErr(ErrInvalidShortAlias, a.Name,
				"short alias %q of argument %q must be a single character", a.Short, a.Name)
		}
	}
	if a.AsManyAs == a.Name {
		return nil, constructionErr(ErrInvalidDeclaration, a.Name, "argument %q cannot count against itself", a.Name)
	}

	if a.Action.takesValue() {
		if a.Nargs.IsZero() {
			a.Nargs = One
		}
	} else {
		if !a.Nargs.IsZero() {
			return nil, constructionErr(ErrInvalidDeclaration, a.Name,
				"argument %q with action %s takes no values, nargs must not be set", a.Name, a.Action)
		}
		if a.Required {
			return nil, constructionErr(ErrInvalidDeclaration, a.Name,
				"argument %q with action %s cannot be a required positional", a.Name, a.Action)
		}
	}
	if a.Required && a.Action == Append {
		return nil, constructionErr(ErrInvalidDeclaration, a.Name, "positional argument %q cannot use action append", a.Name)
	}

	if a.Type.IsZero() {
		a.Type = convert.String
	}

	switch a.Action {
	case StoreTrue:
		if a.Default == nil {
			a.Default = false
		}
	case StoreFalse:
		if a.Default == nil {
			a.Default = true
		}
	case Count:
		if a.Default == nil {
			a.Default = 0
		}
	case Version:
		version := fmt.Sprint(a.Const)
		a.Callback = func(*namespace.Namespace) error {
			return &Exit{Code: 0, Output: version}
		}
		if a.Help == "" {
			a.Help = "show program's version number and exit"
		}
		a.Default = a.Callback
	case Callback:
		if a.Callback == nil {
			return nil, constructionErr(ErrInvalidDeclaration, a.Name, "callback argument %q has no function", a.Name)
		}
		a.Default = a.Callback
	}

	if a.Required && a.Default != nil && a.Nargs.Min() > 0 {
		return nil, constructionErr(ErrInvalidDeclaration, a.Name,
			"required argument %q cannot have a default value", a.Name)
	}

	a.Choices = slices.Clone(a.Choices)
	a.validated = true
	return &a, nil
}

// Validated reports whether the descriptor came out of New.
func (a *Argument) Validated() bool {
	return a.validated
}

// NewAction declares a flag whose only effect is to run fn; the parse pass
// ends once fn returns.
func NewAction(name string, fn ActionFunc) (*Argument, error) {
	return New(Argument{Name: name, Action: Callback, Callback: fn, Exit: true})
}

// Must panics when a declaration is invalid. Intended for static trees.
func Must(a *Argument, err error) *Argument {
	if err != nil {
		panic(err)
	}
	return a
}

// FlagTokens returns the canonical command-line spelling: the bare name for
// a required positional, otherwise "-x" (when aliased) and "--name".
func (a *Argument) FlagTokens() []string {
	if a.Required {
		return []string{a.Name}
	}
	if a.Short != "" {
		return []string{"-" + a.Short, "--" + a.Name}
	}
	return []string{"--" + a.Name}
}

// Positional reports whether the argument is matched by position.
func (a *Argument) Positional() bool {
	return a.Required
}

// TakesValue reports whether the flag consumes tokens.
func (a *Argument) TakesValue() bool {
	return a.Action.takesValue()
}

// DisplayName is the spelling used in error messages: "--name" or "name".
func (a *Argument) DisplayName() string {
	tokens := a.FlagTokens()
	return tokens[len(tokens)-1]
}

// MetavarName is the placeholder used in usage lines.
func (a *Argument) MetavarName() string {
	if a.Metavar != "" {
		return a.Metavar
	}
	if len(a.Choices) > 0 {
		parts := make([]string, len(a.Choices))
		for i, c := range a.Choices {
			parts[i] = fmt.Sprint(c)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	if a.Required {
		return a.Name
	}
	return strings.ToUpper(strings.ReplaceAll(a.Name, "-", "_"))
}

// IsChoice reports whether a converted value is one of Choices.
func (a *Argument) IsChoice(v any) bool {
	if len(a.Choices) == 0 {
		return true
	}
	for _, c := range a.Choices {
		if reflect.DeepEqual(c, v) || fmt.Sprint(c) == fmt.Sprint(v) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the descriptor.
func (a *Argument) Clone() *Argument {
	c := *a
	c.Choices = slices.Clone(a.Choices)
	if list, ok := a.Default.([]any); ok {
		c.Default = slices.Clone(list)
	}
	return &c
}

// Validate checks the count-reference constraint against the parsed values.
// A callback value is exempt, and so is a pair where either side is empty.
func (a *Argument) Validate(ns *namespace.Namespace) error {
	if a.AsManyAs == "" {
		return nil
	}
	mine := ns.Value(a.Name)
	if _, ok := mine.(ActionFunc); ok {
		return nil
	}
	got, ok := length(mine)
	if !ok || got == 0 {
		return nil
	}
	want, ok := length(ns.Value(a.AsManyAs))
	if !ok || want == 0 {
		return nil
	}
	if got != want {
		return &CountMismatchError{Name: a.Name, Sibling: a.AsManyAs, Got: got, Want: want}
	}
	return nil
}

func length(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	default:
		return 0, false
	}
}
