package parser

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/namespace"
)

// Order decides whether a node's children are parsed before or after the
// node's own arguments.
type Order int

const (
	// DepthFirst parses the children first, so the node's hooks see them.
	DepthFirst Order = iota
	// BreadthFirst runs the node's own step before any child.
	BreadthFirst
)

func (o Order) String() string {
	if o == BreadthFirst {
		return "breadth-first"
	}
	return "depth-first"
}

// ParseOrder reads "depth-first" or "breadth-first"; empty means DepthFirst.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "depth-first":
		return DepthFirst, nil
	case "breadth-first":
		return BreadthFirst, nil
	default:
		return DepthFirst, fmt.Errorf("unknown parsing order %q: expected depth-first or breadth-first", s)
	}
}

// ValidateFunc checks invariants that span several arguments of a node.
type ValidateFunc func(ns *namespace.Namespace) error

// ProduceFunc post-processes a node's namespace. It receives the tokens the
// node did not recognize and returns the ones it did not claim. It must
// return the namespace it was given.
type ProduceFunc func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error)

// Config holds the settings of one node.
type Config struct {
	Prog        string // program name, used by the root only
	Description string
	Epilog      string
	Help        string // one line summary shown by the parent's help
	Order       Order
	// Lifted makes the node invisible on the command line; its arguments
	// and children belong to the parent's namespace.
	Lifted bool
	// ParseIfAbsent parses the node with its defaults even when its name is
	// missing from the input. By default an absent node is stored as nil.
	ParseIfAbsent bool
	Validate      ValidateFunc
	Produce       ProduceFunc
	// Defaults pre-populates the namespace, after argument defaults.
	Defaults map[string]any
}

type child struct {
	name string
	node *Node
}

// Node is one parser of the tree. It is immutable after New; every parse
// call works on a fresh namespace.
type Node struct {
	cfg      Config
	args     []*argument.Argument
	children []child
	name     string
	path     string
	prog     string
}

// Declaration is an entry given to New: an argument or a child node.
type Declaration interface {
	apply(n *Node) error
}

type argDecl struct {
	arg *argument.Argument
}

func (d argDecl) apply(n *Node) error {
	if d.arg == nil {
		return argument.NewConstructionError(argument.ErrInvalidDeclaration, "", "nil argument declaration")
	}
	a := d.arg.Clone()
	if !a.Validated() {
		var err error
		if a, err = argument.New(*a); err != nil {
			return err
		}
	}
	n.args = append(n.args, a)
	return nil
}

type subDecl struct {
	name string
	node *Node
}

func (d subDecl) apply(n *Node) error {
	if d.node == nil {
		return argument.NewConstructionError(argument.ErrInvalidDeclaration, d.name, "sub-parser %q is nil", d.name)
	}
	if d.name == "" || strings.HasPrefix(d.name, "-") || strings.ContainsAny(d.name, " \t") {
		return argument.NewConstructionError(argument.ErrInvalidDeclaration, d.name, "invalid sub-parser name %q", d.name)
	}
	c := d.node.Clone()
	c.name = d.name
	n.children = append(n.children, child{name: d.name, node: c})
	return nil
}

// Arg declares an argument of the node. A descriptor that did not come from
// argument.New is validated when the node is built.
func Arg(a *argument.Argument) Declaration {
	return argDecl{arg: a}
}

// Sub attaches a copy of node under name. The copy is owned by the new
// parent; the same node can be attached any number of times.
func Sub(name string, node *Node) Declaration {
	return subDecl{name: name, node: node}
}

// New builds a node from its declarations, in order.
func New(cfg Config, decls ...Declaration) (*Node, error) {
	n := &Node{cfg: cfg}
	n.cfg.Defaults = maps.Clone(cfg.Defaults)
	for _, d := range decls {
		if err := d.apply(n); err != nil {
			return nil, err
		}
	}
	if err := n.check(); err != nil {
		return nil, err
	}
	n.setPath(nil, cfg.Prog)
	return n, nil
}

// MustNew is New for static trees; it panics on a declaration error.
func MustNew(cfg Config, decls ...Declaration) *Node {
	n, err := New(cfg, decls...)
	if err != nil {
		panic(err)
	}
	return n
}

// Clone returns an independent copy of the whole subtree.
func (n *Node) Clone() *Node {
	c := &Node{
		cfg:  n.cfg,
		name: n.name,
		path: n.path,
		prog: n.prog,
	}
	c.cfg.Defaults = maps.Clone(n.cfg.Defaults)
	c.args = make([]*argument.Argument, len(n.args))
	for i, a := range n.args {
		c.args[i] = a.Clone()
	}
	c.children = make([]child, len(n.children))
	for i, ch := range n.children {
		c.children[i] = child{name: ch.name, node: ch.node.Clone()}
	}
	return c
}

// setPath names every node of the subtree relative to this root.
func (n *Node) setPath(trail []string, prog string) {
	n.path = strings.Join(trail, " ")
	n.prog = prog
	for _, ch := range n.children {
		next := trail
		if !ch.node.cfg.Lifted {
			next = append(append([]string(nil), trail...), ch.name)
		}
		ch.node.setPath(next, prog)
	}
}

// Name is the attachment name; empty for a root.
func (n *Node) Name() string { return n.name }

// Path is the space separated list of names leading to the node.
func (n *Node) Path() string { return n.path }

// Config returns the node's settings.
func (n *Node) Config() Config { return n.cfg }

// Prog is the program name followed by the path, as shown in usage lines.
func (n *Node) Prog() string {
	prog := n.prog
	if prog == "" {
		prog = "prog"
	}
	if n.path == "" {
		return prog
	}
	return prog + " " + n.path
}

// Arguments lists the arguments in the node's scope: its own, then those of
// its lifted descendants.
func (n *Node) Arguments() []*argument.Argument {
	out := append([]*argument.Argument(nil), n.args...)
	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			out = append(out, ch.node.Arguments()...)
		}
	}
	return out
}

// Children lists the names a user can type to enter a child of this node,
// including those reached through lifted children.
func (n *Node) Children() []string {
	var out []string
	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			out = append(out, ch.node.Children()...)
			continue
		}
		out = append(out, ch.name)
	}
	return out
}

// Child returns the node reachable under name, looking through lifted children.
func (n *Node) Child(name string) *Node {
	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			if found := ch.node.Child(name); found != nil {
				return found
			}
			continue
		}
		if ch.name == name {
			return ch.node
		}
	}
	return nil
}

var reserved = map[string]bool{"help": true}

// check enforces unique names across the node's scope and resolvable count
// references.
func (n *Node) check() error {
	var errs []error
	seen := make(map[string]string)
	shorts := make(map[string]string)

	claim := func(name, what string) {
		if prev, ok := seen[name]; ok {
			errs = append(errs, argument.NewConstructionError(argument.ErrNameCollision, name,
				"%s %q collides with %s of the same name", what, name, prev))
			return
		}
		seen[name] = what
	}

	scope := n.Arguments()
	for _, a := range scope {
		if reserved[a.Name] || a.Short == "h" {
			errs = append(errs, argument.NewConstructionError(argument.ErrNameCollision, a.Name,
				"argument %q collides with the help flag", a.Name))
			continue
		}
		claim(a.Name, "argument")
		if a.Short == "" {
			continue
		}
		if prev, ok := shorts[a.Short]; ok {
			errs = append(errs, argument.NewConstructionError(argument.ErrNameCollision, a.Name,
				"short alias -%s of %q is already used by %q", a.Short, a.Name, prev))
			continue
		}
		shorts[a.Short] = a.Name
	}
	for _, name := range n.Children() {
		claim(name, "sub-parser")
	}

	for _, a := range scope {
		if a.AsManyAs == "" {
			continue
		}
		if prev, ok := seen[a.AsManyAs]; !ok || prev != "argument" {
			errs = append(errs, argument.NewConstructionError(argument.ErrInvalidDeclaration, a.Name,
				"argument %q counts against %q, which is not an argument of this parser", a.Name, a.AsManyAs))
		}
	}

	return errors.Join(errs...)
}

// newNamespace builds the namespace a parse pass starts from: argument
// defaults, a nil slot for every visible child and the configured Defaults.
func (n *Node) newNamespace() *namespace.Namespace {
	ns := namespace.New()
	n.populate(ns)
	return ns
}

func (n *Node) populate(ns *namespace.Namespace) {
	for _, a := range n.args {
		ns.Set(a.Name, initialValue(a))
	}
	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			ch.node.populate(ns)
			continue
		}
		ns.Set(ch.name, nil)
	}
	for _, k := range sortedKeys(n.cfg.Defaults) {
		ns.Set(k, n.cfg.Defaults[k])
	}
}

func initialValue(a *argument.Argument) any {
	if list, ok := a.Default.([]any); ok {
		return slices.Clone(list)
	}
	return a.Default
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
