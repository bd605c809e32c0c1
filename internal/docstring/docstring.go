// Package docstring extracts per-parameter help texts from documentation
// comments written in the google, numpy or rst conventions, and carries the
// parameter records that other packages turn into arguments.
package docstring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/specialistvlad/declparse/internal/convert"
)

// Style names a documentation convention.
type Style string

const (
	Google Style = "google"
	Numpy  Style = "numpy"
	RST    Style = "rst"
)

// Param describes one parameter of a constructor or function that should be
// exposed on the command line.
type Param struct {
	Name     string
	Default  any
	Type     convert.Type
	Required bool
	Help     string
}

// Signature is a list of parameters together with the documentation that
// describes them.
type Signature struct {
	Doc    string
	Style  Style
	Params []Param
}

// Described returns the parameters with Help filled in from the
// documentation wherever it was empty.
func (s Signature) Described() ([]Param, error) {
	style := s.Style
	if style == "" {
		style = Google
	}
	help, err := Analyze(style, s.Doc)
	if err != nil {
		return nil, err
	}
	out := make([]Param, len(s.Params))
	for i, p := range s.Params {
		if p.Help == "" {
			p.Help = help[p.Name]
		}
		out[i] = p
	}
	return out, nil
}

type analyzer struct {
	definition      *regexp.Regexp
	sections        []string
	inline          bool
	indentSensitive bool
	skip            *regexp.Regexp
}

var analyzers = map[Style]analyzer{
	Google: {
		definition: regexp.MustCompile(`^(?P<name>.+?):(?P<value>.*)`),
		sections:   []string{"Arguments:", "Args:"},
		inline:     true,
	},
	Numpy: {
		definition:      regexp.MustCompile(`^(?P<name>[^-]+)`),
		sections:        []string{"Parameters"},
		indentSensitive: true,
		skip:            regexp.MustCompile(`^-+`),
	},
	RST: {
		definition: regexp.MustCompile(`^:param (?P<name>.+?):(?P<value>.*)`),
		sections:   []string{":param "},
		inline:     true,
		skip:       regexp.MustCompile(`^:.*`),
	},
}

// Analyze collects the help text of every documented parameter. Lines that
// continue a description are joined with single spaces.
func Analyze(style Style, doc string) (map[string]string, error) {
	a, ok := analyzers[style]
	if !ok {
		return nil, fmt.Errorf("unknown docstring style %q: expected google, numpy or rst", style)
	}
	return a.analyze(doc), nil
}

func (a analyzer) analyze(doc string) map[string]string {
	parts := make(map[string][]string)
	collecting := false
	baseIndent := 0
	current := ""

	for _, raw := range strings.Split(doc, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			collecting = false
		}

		for _, section := range a.sections {
			if strings.HasPrefix(line, section) {
				collecting = true
				baseIndent = indentOf(raw)
				break
			}
		}
		if !collecting {
			continue
		}

		m := a.definition.FindStringSubmatch(line)
		if a.indentSensitive && indentOf(raw) != baseIndent {
			m = nil
		}

		switch {
		case m != nil:
			current = strings.TrimSpace(m[a.definition.SubexpIndex("name")])
			if a.inline {
				if value := strings.TrimSpace(m[a.definition.SubexpIndex("value")]); value != "" {
					parts[current] = append(parts[current], value)
				}
			}
		case current != "" && (a.skip == nil || !a.skip.MatchString(line)):
			parts[current] = append(parts[current], line)
		}
	}

	out := make(map[string]string, len(parts))
	for name, lines := range parts {
		out[name] = strings.Join(lines, " ")
	}
	return out
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// Summary returns the first paragraph of doc, on one line.
func Summary(doc string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(doc), "\n\n")
	return strings.Join(strings.Fields(first), " ")
}
