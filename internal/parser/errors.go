package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/declparse/internal/argument"
)

// ExitStatus is the process status for every fatal parse error.
const ExitStatus = 2

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindValidation is a failure reported by a Validate or Produce hook.
	KindValidation ErrorKind = iota
	// KindTypeConversion is a token its converter rejected.
	KindTypeConversion
	// KindMissingRequired is a required positional that never appeared.
	KindMissingRequired
	// KindUnrecognized is a token no node claimed.
	KindUnrecognized
	// KindCountMismatch is a violated count reference between two arguments.
	KindCountMismatch
	// KindUsage covers malformed invocations: wrong number of values, a
	// value outside the declared choices, an ambiguous abbreviation.
	KindUsage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTypeConversion:
		return "type conversion"
	case KindMissingRequired:
		return "missing required argument"
	case KindUnrecognized:
		return "unrecognized argument"
	case KindCountMismatch:
		return "count mismatch"
	case KindUsage:
		return "usage"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is a fatal error raised while parsing. It carries the usage
// header of the node it happened in so it can be reported on its own.
type ParseError struct {
	Node    string // space separated path below the root, empty for the root
	Prog    string // program name plus path, as shown in the usage header
	Usage   string
	Message string
	Kind    ErrorKind
	Err     error

	// Unrecognized and Candidates are set for KindUnrecognized: the tokens
	// nobody claimed and the spellings the node would have accepted.
	Unrecognized []string
	Candidates   []string
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HelpRequest is returned instead of a namespace when the input asked for
// help. Text is the help of the whole tree.
type HelpRequest struct {
	Text string
}

func (h *HelpRequest) Error() string {
	return "help requested"
}

// fail wraps a parse failure at the node boundary. Errors that already
// crossed a boundary, and requests to end the pass, are returned unchanged.
func (n *Node) fail(kind ErrorKind, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	var exit *argument.Exit
	if errors.As(err, &exit) {
		return err
	}
	return n.newError(kind, err.Error(), err)
}

func (n *Node) newError(kind ErrorKind, message string, cause error) *ParseError {
	return &ParseError{
		Node:    n.path,
		Prog:    n.Prog(),
		Usage:   n.Usage(),
		Message: message,
		Kind:    kind,
		Err:     cause,
	}
}

func (n *Node) unrecognized(tokens []string) error {
	pe := n.newError(KindUnrecognized, "unrecognized arguments: "+strings.Join(tokens, " "), nil)
	pe.Unrecognized = tokens
	for _, a := range n.Arguments() {
		if !a.Positional() {
			pe.Candidates = append(pe.Candidates, a.FlagTokens()...)
		}
	}
	pe.Candidates = append(pe.Candidates, n.Children()...)
	return pe
}

func (n *Node) failf(kind ErrorKind, format string, args ...any) error {
	return n.fail(kind, fmt.Errorf(format, args...))
}
