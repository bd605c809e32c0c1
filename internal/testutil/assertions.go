package testutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/declparse/internal/namespace"
	"github.com/specialistvlad/declparse/internal/parser"
)

// AssertNamespace compares ns with the nested map it should convert to.
func AssertNamespace(t *testing.T, want map[string]any, ns *namespace.Namespace) {
	t.Helper()
	require.NotNil(t, ns, "namespace is nil")
	if diff := cmp.Diff(want, ns.ToMap()); diff != "" {
		t.Errorf("namespace mismatch (-want +got):\n%s", diff)
	}
}

// RequireParseError asserts that err is a *parser.ParseError of the given
// kind and message, and returns it.
func RequireParseError(t *testing.T, err error, kind parser.ErrorKind, message string) *parser.ParseError {
	t.Helper()
	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe), "expected a *parser.ParseError, got %v", err)
	require.Equal(t, kind, pe.Kind, "error kind")
	require.Equal(t, message, pe.Message, "error message")
	return pe
}
