package parser

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/declparse/internal/ctxlog"
	"github.com/specialistvlad/declparse/internal/grouper"
	"github.com/specialistvlad/declparse/internal/namespace"
)

// ParseArgs parses the whole input. A help flag before "--" returns a
// *HelpRequest before anything is parsed, and tokens no node claimed fail
// the parse with "unrecognized arguments".
func (n *Node) ParseArgs(ctx context.Context, tokens []string) (*namespace.Namespace, error) {
	if wantsHelp(tokens) {
		ctxlog.FromContext(ctx).Debug("help requested")
		return nil, &HelpRequest{Text: n.Help()}
	}

	ns, unknown, err := n.ParseKnownArgs(ctx, tokens)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, n.unrecognized(unknown)
	}
	return ns, nil
}

// ParseKnownArgs parses what it can and returns the tokens nobody claimed.
// Every call starts from a fresh namespace.
func (n *Node) ParseKnownArgs(ctx context.Context, tokens []string) (*namespace.Namespace, []string, error) {
	ns := n.newNamespace()
	unknown, err := n.parse(ctx, ns, tokens, false)
	if err != nil {
		return nil, nil, err
	}
	return ns, unknown, nil
}

func wantsHelp(tokens []string) bool {
	for _, t := range tokens {
		switch t {
		case grouper.Terminator:
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}

// parse runs the protocol of one node on ns. A lifted node shares ns with
// its parent and only receives the tokens of its children that were named
// in the input.
func (n *Node) parse(ctx context.Context, ns *namespace.Namespace, tokens []string, lifted bool) ([]string, error) {
	ctx = ctxlog.WithNode(ctx, n.path)
	logger := ctxlog.FromContext(ctx)

	groups := grouper.Group(tokens, n.Children())
	logger.Debug("tokens grouped", "own", len(groups.Own), "children", groups.Names(), "lifted", lifted)

	if lifted && !n.cfg.ParseIfAbsent && len(groups.Names()) == 0 {
		logger.Debug("lifted branch skipped, no child named in input")
		return tokens, nil
	}

	var unknown []string
	var err error
	if n.cfg.Order == BreadthFirst {
		if unknown, err = n.parseOwn(ctx, ns, groups, lifted); err != nil {
			return nil, err
		}
		if err = n.parseChildren(ctx, ns, groups, lifted); err != nil {
			return nil, err
		}
	} else {
		if err = n.parseChildren(ctx, ns, groups, lifted); err != nil {
			return nil, err
		}
		if unknown, err = n.parseOwn(ctx, ns, groups, lifted); err != nil {
			return nil, err
		}
	}

	logger.Debug("node done", "unknown", len(unknown))
	return unknown, nil
}

// parseOwn matches the node's tokens, enters its lifted branches and runs
// the validation and post-processing hooks.
func (n *Node) parseOwn(ctx context.Context, ns *namespace.Namespace, groups grouper.Groups, lifted bool) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	// The arguments of a lifted node were matched by the ancestor that owns
	// the namespace.
	unknown := groups.Own
	if !lifted {
		m := &matcher{node: n, ns: ns, args: n.Arguments()}
		var err error
		if unknown, err = m.match(groups.Own); err != nil {
			logger.Debug("own arguments failed", "error", err)
			return nil, err
		}
	}
	logger.Debug("own arguments processed", "unknown", len(unknown))

	for _, ch := range n.children {
		if !ch.node.cfg.Lifted {
			continue
		}
		left, err := ch.node.parse(ctx, ns, liftedTokens(ch.node, groups), true)
		if err != nil {
			return nil, err
		}
		unknown = append(unknown, left...)
	}

	if !lifted {
		for _, a := range n.Arguments() {
			if err := a.Validate(ns); err != nil {
				return nil, n.fail(KindCountMismatch, err)
			}
		}
	}
	if n.cfg.Validate != nil {
		if err := n.cfg.Validate(ns); err != nil {
			return nil, n.fail(KindValidation, err)
		}
	}
	logger.Debug("validated")

	if n.cfg.Produce != nil {
		out, rest, err := n.cfg.Produce(ns, slices.Clone(unknown))
		if err != nil {
			return nil, n.fail(KindValidation, err)
		}
		if out != ns {
			return nil, fmt.Errorf("parser %q: produce hook must return the namespace it was given", n.Prog())
		}
		unknown = rest
		logger.Debug("post-processed", "unknown", len(unknown))
	}
	return unknown, nil
}

// parseChildren handles the visible children. Lifted children are entered
// from the own step because they share its arguments.
func (n *Node) parseChildren(ctx context.Context, ns *namespace.Namespace, groups grouper.Groups, lifted bool) error {
	logger := ctxlog.FromContext(ctx)

	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			continue
		}
		// Under a lifted node only the children named in the input run,
		// whatever their own ParseIfAbsent says.
		if !groups.Present(ch.name) && (lifted || !ch.node.cfg.ParseIfAbsent) {
			logger.Debug("child skipped", "child", ch.name)
			ns.Set(ch.name, nil)
			continue
		}

		sub := ch.node.newNamespace()
		left, err := ch.node.parse(ctx, sub, groups.Tokens(ch.name), false)
		if err != nil {
			return err
		}
		if len(left) > 0 {
			return ch.node.unrecognized(left)
		}
		ns.Set(ch.name, sub)
	}
	logger.Debug("children processed")
	return nil
}

// liftedTokens rebuilds the input of a lifted child from the groups of its
// own children that were named in the input.
func liftedTokens(lifted *Node, groups grouper.Groups) []string {
	var out []string
	for _, name := range lifted.Children() {
		if !groups.Present(name) {
			continue
		}
		out = append(out, name)
		out = append(out, groups.Tokens(name)...)
	}
	return out
}
