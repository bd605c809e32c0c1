package parser

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/specialistvlad/declparse/internal/argument"
)

const (
	helpIndent = 2
	helpColumn = 24
	helpWidth  = 79
)

// Usage renders the one-line usage header of the node.
func (n *Node) Usage() string {
	parts := []string{"usage:", n.Prog(), "[-h]"}
	var positional []string
	for _, a := range n.Arguments() {
		if a.Positional() {
			positional = append(positional, strings.TrimSpace(valuesPart(a)))
			continue
		}
		flag := a.FlagTokens()[0] + valuesPart(a)
		if a.Action == argument.Append || a.Action == argument.Count {
			flag += " ..."
		}
		parts = append(parts, "["+flag+"]")
	}
	parts = append(parts, positional...)
	if names := n.Children(); len(names) > 0 {
		parts = append(parts, "{"+strings.Join(names, ",")+"}", "...")
	}
	return strings.Join(parts, " ")
}

// valuesPart renders the placeholders that follow a flag, with a leading space.
func valuesPart(a *argument.Argument) string {
	if !a.TakesValue() {
		return ""
	}
	meta := a.MetavarName()
	switch n := a.Nargs; {
	case n == argument.One:
		return " " + meta
	case n == argument.Optional:
		return " [" + meta + "]"
	case n == argument.ZeroOrMore:
		return " [" + meta + " ...]"
	case n == argument.OneOrMore:
		return " " + meta + " [" + meta + " ...]"
	default:
		return strings.Repeat(" "+meta, n.Min())
	}
}

// Summary is the line shown for the node in its parent's help.
func (n *Node) Summary() string {
	if n.cfg.Help != "" {
		return n.cfg.Help
	}
	names := make([]string, 0, len(n.args))
	for _, a := range n.args {
		names = append(names, a.Name)
	}
	return "Accepts: " + strings.Join(names, ", ")
}

// Help renders the help of the node followed by the help of every visible
// descendant.
func (n *Node) Help() string {
	var b strings.Builder
	n.writeHelp(&b)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (n *Node) writeHelp(b *strings.Builder) {
	b.WriteString(n.Usage())
	b.WriteString("\n")

	if n.cfg.Description != "" {
		fmt.Fprintf(b, "\n%s\n", wordwrap.WrapString(strings.TrimSpace(n.cfg.Description), helpWidth))
	}

	var positional, optional []*argument.Argument
	for _, a := range n.Arguments() {
		if a.Positional() {
			positional = append(positional, a)
		} else {
			optional = append(optional, a)
		}
	}

	if len(positional) > 0 {
		b.WriteString("\npositional arguments:\n")
		for _, a := range positional {
			writeEntry(b, a.MetavarName(), argumentHelp(a))
		}
	}

	b.WriteString("\noptions:\n")
	writeEntry(b, "-h, --help", "show this help message and exit")
	for _, a := range optional {
		tokens := a.FlagTokens()
		for i := range tokens {
			tokens[i] += valuesPart(a)
		}
		writeEntry(b, strings.Join(tokens, ", "), argumentHelp(a))
	}

	visible := n.visibleChildren()
	if len(visible) > 0 {
		b.WriteString("\nsub-commands:\n")
		for _, ch := range visible {
			writeEntry(b, ch.name, ch.node.Summary())
		}
	}

	if n.cfg.Epilog != "" {
		fmt.Fprintf(b, "\n%s\n", wordwrap.WrapString(strings.TrimSpace(n.cfg.Epilog), helpWidth))
	}

	for _, ch := range visible {
		b.WriteString("\n")
		ch.node.writeHelp(b)
	}
}

// visibleChildren lists the children a user can name, looking through
// lifted ones.
func (n *Node) visibleChildren() []child {
	var out []child
	for _, ch := range n.children {
		if ch.node.cfg.Lifted {
			out = append(out, ch.node.visibleChildren()...)
			continue
		}
		out = append(out, ch)
	}
	return out
}

func argumentHelp(a *argument.Argument) string {
	text := a.Help
	switch a.Action {
	case argument.Store, argument.Append:
		if a.Default != nil {
			text = strings.TrimSpace(fmt.Sprintf("%s (default: %s)", text, a.Type.Render(a.Default)))
		}
	}
	return text
}

// writeEntry writes an argparse-style two column line, moving the help text
// to its own line when the invocation is too wide.
func writeEntry(b *strings.Builder, invocation, help string) {
	pad := strings.Repeat(" ", helpIndent)
	lines := strings.Split(wordwrap.WrapString(help, helpWidth-helpColumn), "\n")
	if help == "" {
		lines = nil
	}

	head := pad + invocation
	if len(head) <= helpColumn-2 && len(lines) > 0 {
		fmt.Fprintf(b, "%-*s%s\n", helpColumn, head, lines[0])
		lines = lines[1:]
	} else {
		b.WriteString(head + "\n")
	}
	for _, line := range lines {
		b.WriteString(strings.Repeat(" ", helpColumn) + line + "\n")
	}
}
