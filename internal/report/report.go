// Package report is the single place where parse results are turned into
// output and an exit status. The parser never writes or exits by itself.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/parser"
)

// Reporter writes help and results to Out and diagnostics to Err.
type Reporter struct {
	Prog string
	Out  io.Writer
	Err  io.Writer
}

// New creates a Reporter; nil writers default to the process streams.
func New(prog string, out, errOut io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Reporter{Prog: prog, Out: out, Err: errOut}
}

// Report renders err and returns the exit status it stands for:
// 0 for success and help, 2 for parse errors, the code of an
// *argument.Exit, and 1 for anything else.
func (r *Reporter) Report(err error) int {
	if err == nil {
		return 0
	}

	var help *parser.HelpRequest
	if errors.As(err, &help) {
		fmt.Fprint(r.Out, help.Text)
		return 0
	}

	var exit *argument.Exit
	if errors.As(err, &exit) {
		if exit.Output != "" {
			fmt.Fprintln(r.Out, exit.Output)
		}
		return exit.Code
	}

	var pe *parser.ParseError
	if errors.As(err, &pe) {
		prog := pe.Prog
		if prog == "" {
			prog = r.Prog
		}
		fmt.Fprintln(r.Err, pe.Usage)
		fmt.Fprintf(r.Err, "%s: error: %s\n", prog, pe.Message)
		if hint := suggest(pe); hint != "" {
			fmt.Fprintln(r.Err, hint)
		}
		return parser.ExitStatus
	}

	fmt.Fprintf(r.Err, "%s: error: %v\n", r.Prog, err)
	return 1
}

// Abort reports err and terminates the process with its status.
func (r *Reporter) Abort(err error) {
	os.Exit(r.Report(err))
}

// suggest builds a "did you mean" line for the unrecognized flags that have
// a close accepted spelling.
func suggest(pe *parser.ParseError) string {
	if pe.Kind != parser.KindUnrecognized || len(pe.Candidates) == 0 {
		return ""
	}
	var hints []string
	for _, token := range pe.Unrecognized {
		if !strings.HasPrefix(token, "-") {
			continue
		}
		if match := closest(token, pe.Candidates); match != "" {
			hints = append(hints, fmt.Sprintf("%s (did you mean %s?)", token, match))
		}
	}
	if len(hints) == 0 {
		return ""
	}
	return "hint: " + strings.Join(hints, ", ")
}

func closest(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
