package parser

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/declparse/internal/argument"
	"github.com/specialistvlad/declparse/internal/convert"
	"github.com/specialistvlad/declparse/internal/docstring"
	"github.com/specialistvlad/declparse/internal/namespace"
)

func arg(a argument.Argument) Declaration {
	return Arg(argument.Must(argument.New(a)))
}

func tokens(line string) []string {
	return strings.Fields(line)
}

func requireParseError(t *testing.T, err error, kind ErrorKind, message string) *ParseError {
	t.Helper()
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, kind, pe.Kind, "kind of %q", pe.Message)
	assert.Equal(t, message, pe.Message)
	return pe
}

func shoppingCart() *Node {
	return MustNew(Config{Prog: "cart"},
		arg(argument.Argument{Name: "products", Nargs: argument.ZeroOrMore}),
		arg(argument.Argument{
			Name:     "counts",
			Type:     convert.PositiveInt,
			Nargs:    argument.ZeroOrMore,
			AsManyAs: "products",
			Help:     "How many products of each type there are in your trolley?",
		}),
	)
}

func imageConverter() *Node {
	formats := []any{"png", "jpeg", "gif"}
	input := MustNew(Config{},
		arg(argument.Argument{Name: "format", Default: "png", Choices: formats}),
	)
	output := MustNew(Config{},
		arg(argument.Argument{Name: "format", Default: "jpeg", Choices: formats}),
		arg(argument.Argument{Name: "scale", Type: convert.Int, Default: 100, Help: "Rescale image to % of original size"}),
	)
	return MustNew(Config{Prog: "convert", Description: "This app converts images"},
		arg(argument.Argument{Name: "verbose", Action: argument.StoreTrue}),
		Sub("input", input),
		Sub("output", output),
	)
}

func greetings() *Node {
	return MustNew(Config{
		Prog: "greet",
		Produce: func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
			line := fmt.Sprintf("Hello %s!\n", ns.Value("name"))
			ns.Set("greetings", strings.Repeat(line, ns.Value("count").(int)))
			return ns, unknown, nil
		},
	},
		arg(argument.Argument{Name: "name", Required: true, Help: "Whom to greet"}),
		arg(argument.Argument{Name: "count", Short: "c", Type: convert.Int, Default: 1, Help: "Number of greetings."}),
	)
}

func TestCountReference(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		kind    ErrorKind
		message string
	}{
		{
			name:    "more counts than products",
			input:   "--products milk --counts 3 1",
			kind:    KindCountMismatch,
			message: "counts for 2 products provided, expected for 1",
		},
		{
			name:    "fewer counts than products",
			input:   "--products milk coffee --counts 3",
			kind:    KindCountMismatch,
			message: "counts for 1 products provided, expected for 2",
		},
		{
			name:    "negative count",
			input:   "--products milk coffee --counts 3 -1",
			kind:    KindTypeConversion,
			message: "argument --counts: invalid positive_int value: '-1'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := shoppingCart().ParseArgs(context.Background(), tokens(tc.input))
			pe := requireParseError(t, err, tc.kind, tc.message)
			assert.Equal(t, "cart", pe.Prog)
			assert.True(t, strings.HasPrefix(pe.Usage, "usage: cart"))
		})
	}

	t.Run("matching counts", func(t *testing.T) {
		ns, err := shoppingCart().ParseArgs(context.Background(), tokens("--products milk coffee --counts 3 1"))
		require.NoError(t, err)
		assert.Equal(t, []any{"milk", "coffee"}, ns.Value("products"))
		assert.Equal(t, []any{3, 1}, ns.Value("counts"))
	})
}

func TestCountMismatch_IsReachableWithErrorsAs(t *testing.T) {
	_, err := shoppingCart().ParseArgs(context.Background(), tokens("--products milk --counts 3 1"))
	var mismatch *argument.CountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Got)
	assert.Equal(t, 1, mismatch.Want)
}

func TestImageConverter(t *testing.T) {
	// --- Arrange ---
	root := imageConverter()

	// --- Act ---
	ns, err := root.ParseArgs(context.Background(), tokens("--verbose input --format jpeg output --format gif --scale 50"))

	// --- Assert ---
	require.NoError(t, err)
	want := map[string]any{
		"verbose": true,
		"input":   map[string]any{"format": "jpeg"},
		"output":  map[string]any{"format": "gif", "scale": 50},
	}
	if diff := cmp.Diff(want, ns.ToMap()); diff != "" {
		t.Errorf("namespace mismatch (-want +got):\n%s", diff)
	}
}

func TestImageConverter_Errors(t *testing.T) {
	_, err := imageConverter().ParseArgs(context.Background(), tokens("input --format bmp"))
	pe := requireParseError(t, err, KindUsage, "argument --format: invalid choice: 'bmp' (choose from 'png', 'jpeg', 'gif')")
	assert.Equal(t, "input", pe.Node)
	assert.Equal(t, "convert input", pe.Prog)

	_, err = imageConverter().ParseArgs(context.Background(), tokens("output --bogus"))
	pe = requireParseError(t, err, KindUnrecognized, "unrecognized arguments: --bogus")
	assert.Equal(t, "output", pe.Node)
	assert.True(t, strings.HasPrefix(pe.Usage, "usage: convert output"))

	_, err = imageConverter().ParseArgs(context.Background(), tokens("output --scale big"))
	requireParseError(t, err, KindTypeConversion, "argument --scale: invalid int value: 'big'")
}

func TestGreetings(t *testing.T) {
	ns, err := greetings().ParseArgs(context.Background(), tokens("joe"))
	require.NoError(t, err)
	assert.Equal(t, "Hello joe!\n", ns.Value("greetings"))
	assert.Equal(t, "joe", ns.Value("name"))
	assert.Equal(t, 1, ns.Value("count"))

	for _, command := range []string{"joe --count 2", "joe --c 2", "joe -c 2", "joe -c2", "joe --count=2", "--count 2 joe"} {
		t.Run(command, func(t *testing.T) {
			ns, err := greetings().ParseArgs(context.Background(), tokens(command))
			require.NoError(t, err)
			assert.Equal(t, "Hello joe!\nHello joe!\n", ns.Value("greetings"))
		})
	}
}

func TestGreetings_Errors(t *testing.T) {
	_, err := greetings().ParseArgs(context.Background(), tokens("joe --cont 4"))
	requireParseError(t, err, KindUnrecognized, "unrecognized arguments: --cont 4")

	_, err = greetings().ParseArgs(context.Background(), nil)
	pe := requireParseError(t, err, KindMissingRequired, "missing required arguments: name")
	assert.Equal(t, "usage: greet [-h] [-c COUNT] name", pe.Usage)

	_, err = greetings().ParseArgs(context.Background(), tokens("joe --count"))
	requireParseError(t, err, KindUsage, "argument -c/--count: expected one argument")
}

func TestParseKnownArgs_ReturnsLeftovers(t *testing.T) {
	ns, unknown, err := greetings().ParseKnownArgs(context.Background(), tokens("--extra joe surplus"))
	require.NoError(t, err)
	assert.Equal(t, "joe", ns.Value("name"))
	assert.Equal(t, []string{"--extra", "surplus"}, unknown)
}

func TestSkipIfAbsent(t *testing.T) {
	var validated, produced int
	child := MustNew(Config{
		Validate: func(*namespace.Namespace) error {
			validated++
			return nil
		},
		Produce: func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
			produced++
			return ns, unknown, nil
		},
	}, arg(argument.Argument{Name: "level", Type: convert.Int, Default: 3}))
	eager := MustNew(Config{ParseIfAbsent: true}, arg(argument.Argument{Name: "size", Type: convert.Int, Default: 8}))
	root := MustNew(Config{}, arg(argument.Argument{Name: "x"}), Sub("child", child), Sub("eager", eager))

	t.Run("absent", func(t *testing.T) {
		validated, produced = 0, 0
		ns, err := root.ParseArgs(context.Background(), tokens("--x 1"))
		require.NoError(t, err)

		assert.True(t, ns.Has("child"))
		assert.Nil(t, ns.Value("child"))
		assert.Zero(t, validated)
		assert.Zero(t, produced)

		require.NotNil(t, ns.Sub("eager"), "a node that parses when absent gets its defaults")
		assert.Equal(t, 8, ns.Sub("eager").Value("size"))
	})

	t.Run("present without tokens", func(t *testing.T) {
		validated, produced = 0, 0
		ns, err := root.ParseArgs(context.Background(), tokens("child"))
		require.NoError(t, err)

		require.NotNil(t, ns.Sub("child"))
		assert.Equal(t, 3, ns.Sub("child").Value("level"))
		assert.Equal(t, 1, validated)
		assert.Equal(t, 1, produced)
	})
}

func liftedTree(commonCfg Config, produced *int) *Node {
	commonCfg.Lifted = true
	commonCfg.Produce = func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
		*produced++
		ns.Set("seen_threads", ns.Value("threads"))
		return ns, unknown, nil
	}
	db := MustNew(Config{}, arg(argument.Argument{Name: "url", Default: "sqlite://"}))
	cache := MustNew(Config{ParseIfAbsent: true}, arg(argument.Argument{Name: "size", Type: convert.Int, Default: 64}))
	common := MustNew(commonCfg,
		arg(argument.Argument{Name: "threads", Type: convert.Int, Default: 1}),
		Sub("db", db),
		Sub("cache", cache),
	)
	return MustNew(Config{Prog: "app"},
		arg(argument.Argument{Name: "verbose", Action: argument.StoreTrue}),
		Sub("common", common),
	)
}

func TestLifted(t *testing.T) {
	t.Run("arguments are flattened into the parent", func(t *testing.T) {
		var produced int
		root := liftedTree(Config{}, &produced)

		ns, err := root.ParseArgs(context.Background(), tokens("--threads 4"))
		require.NoError(t, err)

		assert.Equal(t, 4, ns.Value("threads"))
		assert.False(t, ns.Has("common"), "a lifted node has no key of its own")
		assert.Equal(t, []string{"verbose", "threads", "db", "cache"}, ns.Keys())
	})

	t.Run("grandchildren are reachable by name", func(t *testing.T) {
		var produced int
		root := liftedTree(Config{}, &produced)

		ns, err := root.ParseArgs(context.Background(), tokens("--threads 2 db --url pg://x"))
		require.NoError(t, err)

		require.NotNil(t, ns.Sub("db"))
		assert.Equal(t, "pg://x", ns.Sub("db").Value("url"))
		assert.Equal(t, 1, produced)
		assert.Equal(t, 2, ns.Value("seen_threads"), "lifted hooks run after the parent matched their arguments")
	})

	t.Run("absent grandchildren are nil whatever their own setting", func(t *testing.T) {
		var produced int
		root := liftedTree(Config{}, &produced)

		ns, err := root.ParseArgs(context.Background(), tokens("db"))
		require.NoError(t, err)

		assert.True(t, ns.Has("cache"))
		assert.Nil(t, ns.Value("cache"))
	})

	t.Run("skipped lifted branch runs no hooks", func(t *testing.T) {
		var produced int
		root := liftedTree(Config{}, &produced)

		ns, err := root.ParseArgs(context.Background(), tokens("--threads 4"))
		require.NoError(t, err)

		assert.Zero(t, produced)
		assert.False(t, ns.Has("seen_threads"))
	})

	t.Run("lifted branch that parses when absent runs its hooks", func(t *testing.T) {
		var produced int
		root := liftedTree(Config{ParseIfAbsent: true}, &produced)

		ns, err := root.ParseArgs(context.Background(), tokens("--threads 4"))
		require.NoError(t, err)

		assert.Equal(t, 1, produced)
		assert.Equal(t, 4, ns.Value("seen_threads"))
		assert.Nil(t, ns.Value("cache"))
	})

	t.Run("help shows the lifted arguments on the parent", func(t *testing.T) {
		var produced int
		root := liftedTree(Config{}, &produced)
		assert.Equal(t, "usage: app [-h] [--verbose] [--threads THREADS] {db,cache} ...", root.Usage())
	})
}

func TestParsingOrder(t *testing.T) {
	testCases := []struct {
		name          string
		order         Order
		wantCalls     []string
		wantChildSeen bool
	}{
		{name: "depth-first", order: DepthFirst, wantCalls: []string{"child", "root"}, wantChildSeen: true},
		{name: "breadth-first", order: BreadthFirst, wantCalls: []string{"root", "child"}, wantChildSeen: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			var calls []string
			childSeen := false
			child := MustNew(Config{
				Produce: func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
					calls = append(calls, "child")
					return ns, unknown, nil
				},
			}, arg(argument.Argument{Name: "value", Type: convert.Int}))
			root := MustNew(Config{
				Order: tc.order,
				Produce: func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
					calls = append(calls, "root")
					childSeen = ns.Sub("child") != nil
					return ns, unknown, nil
				},
			}, Sub("child", child))

			// --- Act ---
			ns, err := root.ParseArgs(context.Background(), tokens("child --value 7"))

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.wantCalls, calls)
			assert.Equal(t, tc.wantChildSeen, childSeen)
			assert.Equal(t, 7, ns.Sub("child").Value("value"))
		})
	}
}

func TestNameCollisions(t *testing.T) {
	common := MustNew(Config{Lifted: true}, arg(argument.Argument{Name: "verbose", Action: argument.StoreTrue}))
	plain := MustNew(Config{})

	testCases := []struct {
		name    string
		decls   []Declaration
		wantErr error
	}{
		{
			name: "duplicate own argument",
			decls: []Declaration{
				arg(argument.Argument{Name: "x"}),
				arg(argument.Argument{Name: "x"}),
			},
			wantErr: argument.ErrNameCollision,
		},
		{
			name: "lifted argument collides with own",
			decls: []Declaration{
				arg(argument.Argument{Name: "verbose", Action: argument.StoreTrue}),
				Sub("common", common),
			},
			wantErr: argument.ErrNameCollision,
		},
		{
			name: "sub-parser named like an argument",
			decls: []Declaration{
				arg(argument.Argument{Name: "input"}),
				Sub("input", plain),
			},
			wantErr: argument.ErrNameCollision,
		},
		{
			name: "short alias used twice",
			decls: []Declaration{
				arg(argument.Argument{Name: "count", Short: "c"}),
				arg(argument.Argument{Name: "cache", Short: "c"}),
			},
			wantErr: argument.ErrNameCollision,
		},
		{
			name:    "help is reserved",
			decls:   []Declaration{arg(argument.Argument{Name: "help"})},
			wantErr: argument.ErrNameCollision,
		},
		{
			name:    "count reference to nothing",
			decls:   []Declaration{arg(argument.Argument{Name: "counts", AsManyAs: "products"})},
			wantErr: argument.ErrInvalidDeclaration,
		},
		{
			name:    "dashed sub-parser name",
			decls:   []Declaration{Sub("--input", plain)},
			wantErr: argument.ErrInvalidDeclaration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Config{}, tc.decls...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSub_AttachesIndependentCopies(t *testing.T) {
	template := MustNew(Config{}, arg(argument.Argument{Name: "format", Default: "png"}))
	first := MustNew(Config{Prog: "a"}, Sub("input", template), Sub("output", template))
	second := MustNew(Config{Prog: "b"}, Sub("source", template))

	ns, err := first.ParseArgs(context.Background(), tokens("input --format gif output"))
	require.NoError(t, err)
	assert.Equal(t, "gif", ns.Sub("input").Value("format"))
	assert.Equal(t, "png", ns.Sub("output").Value("format"))

	ns, err = second.ParseArgs(context.Background(), tokens("source"))
	require.NoError(t, err)
	assert.Equal(t, "png", ns.Sub("source").Value("format"))
	assert.Equal(t, "b source", second.Child("source").Prog())
	assert.Equal(t, "a output", first.Child("output").Prog())
}

func TestParse_FreshNamespacePerCall(t *testing.T) {
	root := MustNew(Config{}, arg(argument.Argument{Name: "tag", Action: argument.Append}))

	ns, err := root.ParseArgs(context.Background(), tokens("--tag a --tag b"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, ns.Value("tag"))

	ns, err = root.ParseArgs(context.Background(), tokens("--tag c"))
	require.NoError(t, err)
	assert.Equal(t, []any{"c"}, ns.Value("tag"))
}

func TestHelpRequest(t *testing.T) {
	_, err := imageConverter().ParseArgs(context.Background(), tokens("--verbose input --format gif -h"))

	var help *HelpRequest
	require.ErrorAs(t, err, &help)
	for _, want := range []string{
		"usage: convert [-h] [--verbose] {input,output} ...",
		"This app converts images",
		"input                 Accepts: format",
		"output                Accepts: format, scale",
		"usage: convert input [-h] [--format {png,jpeg,gif}]",
		"usage: convert output [-h] [--format {png,jpeg,gif}] [--scale SCALE]",
		"Rescale image to % of original size (default: 100)",
	} {
		assert.Contains(t, help.Text, want)
	}
}

func TestHelpRequest_AfterTerminatorIsAValue(t *testing.T) {
	root := MustNew(Config{}, arg(argument.Argument{Name: "rest", Required: true, Nargs: argument.ZeroOrMore}))

	ns, err := root.ParseArgs(context.Background(), tokens("-- -h"))
	require.NoError(t, err)
	assert.Equal(t, []any{"-h"}, ns.Value("rest"))
}

func TestHelp_Greetings(t *testing.T) {
	text := greetings().Help()
	assert.Contains(t, text, "positional arguments:\n  name                  Whom to greet\n")
	assert.Contains(t, text, "  -c COUNT, --count COUNT\n                        Number of greetings. (default: 1)\n")
}

func TestRender_Idempotent(t *testing.T) {
	testCases := []struct {
		name  string
		root  func() *Node
		input string
	}{
		{name: "image converter", root: imageConverter, input: "--verbose input --format jpeg output --format gif --scale 50"},
		{name: "image converter defaults", root: imageConverter, input: ""},
		{name: "image converter present child", root: imageConverter, input: "output"},
		{name: "greetings", root: greetings, input: "joe -c 3"},
		{name: "shopping cart", root: shoppingCart, input: "--products milk coffee --counts 3 1"},
		{name: "optional value given", root: leveled, input: "--level high"},
		{name: "optional value omitted", root: leveled, input: "--level"},
		{name: "optional flag absent", root: leveled, input: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			root := tc.root()
			first, err := root.ParseArgs(context.Background(), tokens(tc.input))
			require.NoError(t, err)

			// --- Act ---
			rendered := root.Render(first)
			second, err := root.ParseArgs(context.Background(), rendered)

			// --- Assert ---
			require.NoError(t, err, "rendered: %v", rendered)
			if diff := cmp.Diff(first.ToMap(), second.ToMap()); diff != "" {
				t.Errorf("re-parsed namespace differs (-first +second):\n%s", diff)
			}
		})
	}
}

func leveled() *Node {
	return MustNew(Config{Prog: "log"},
		arg(argument.Argument{Name: "files", Required: true, Nargs: argument.ZeroOrMore}),
		arg(argument.Argument{Name: "level", Nargs: argument.Optional, Default: "low"}),
	)
}

func TestRender_OptionalValue(t *testing.T) {
	testCases := []struct {
		input     string
		wantLevel any
		want      []string
	}{
		{input: "--level", wantLevel: nil, want: []string{"--level"}},
		{input: "--level high", wantLevel: "high", want: []string{"--level=high"}},
		{input: "", wantLevel: "low", want: []string{"--level=low"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			root := leveled()
			ns, err := root.ParseArgs(context.Background(), tokens(tc.input))
			require.NoError(t, err)

			assert.Equal(t, tc.wantLevel, ns.Value("level"))
			assert.Equal(t, tc.want, root.Render(ns))
		})
	}
}

func TestPositionals_EmptyList(t *testing.T) {
	root := MustNew(Config{},
		arg(argument.Argument{Name: "files", Required: true, Nargs: argument.ZeroOrMore}),
		arg(argument.Argument{Name: "extra", Required: true, Nargs: argument.ZeroOrMore, Default: []any{"x"}}),
	)

	ns, err := root.ParseArgs(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, []any{}, ns.Value("files"))
	assert.Equal(t, []any{"x"}, ns.Value("extra"), "a declared default wins over the empty list")
}

func TestArg_PlainDescriptor(t *testing.T) {
	t.Run("filled in like New", func(t *testing.T) {
		root, err := New(Config{}, Arg(&argument.Argument{Name: "count", Type: convert.Int}))
		require.NoError(t, err)

		ns, err := root.ParseArgs(context.Background(), tokens("--count 3"))
		require.NoError(t, err)
		assert.Equal(t, 3, ns.Value("count"))
	})

	t.Run("rejected like New", func(t *testing.T) {
		_, err := New(Config{}, Arg(&argument.Argument{Name: "path", Required: true, Short: "p"}))
		assert.ErrorIs(t, err, argument.ErrInvalidShortAlias)
	})
}

func TestRender_Flags(t *testing.T) {
	root := MustNew(Config{},
		arg(argument.Argument{Name: "verbose", Short: "v", Action: argument.Count}),
		arg(argument.Argument{Name: "quiet", Action: argument.StoreFalse}),
		arg(argument.Argument{Name: "tag", Action: argument.Append}),
	)
	ns, err := root.ParseArgs(context.Background(), tokens("-vvv --quiet --tag a --tag b"))
	require.NoError(t, err)
	assert.Equal(t, 3, ns.Value("verbose"))
	assert.Equal(t, false, ns.Value("quiet"))

	assert.Equal(t, tokens("--verbose --verbose --verbose --quiet --tag a --tag b"), root.Render(ns))
}

func TestAbbreviation_Ambiguous(t *testing.T) {
	root := MustNew(Config{},
		arg(argument.Argument{Name: "count"}),
		arg(argument.Argument{Name: "cache"}),
	)
	_, err := root.ParseArgs(context.Background(), tokens("--c 1"))
	requireParseError(t, err, KindUsage, "ambiguous option: --c could match --count, --cache")

	ns, err := root.ParseArgs(context.Background(), tokens("--co 1"))
	require.NoError(t, err)
	assert.Equal(t, "1", ns.Value("count"))
}

func TestPositionals_Distribution(t *testing.T) {
	root := MustNew(Config{},
		arg(argument.Argument{Name: "src", Required: true}),
		arg(argument.Argument{Name: "dst", Required: true, Nargs: argument.OneOrMore}),
	)

	ns, err := root.ParseArgs(context.Background(), tokens("a b c"))
	require.NoError(t, err)
	assert.Equal(t, "a", ns.Value("src"))
	assert.Equal(t, []any{"b", "c"}, ns.Value("dst"))

	_, err = root.ParseArgs(context.Background(), tokens("a"))
	requireParseError(t, err, KindMissingRequired, "missing required arguments: dst")

	ns, err = root.ParseArgs(context.Background(), tokens("-5 -1.5"))
	require.NoError(t, err, "negative numbers are values")
	assert.Equal(t, "-5", ns.Value("src"))
}

func TestCallbacks(t *testing.T) {
	t.Run("action ends the pass", func(t *testing.T) {
		called := false
		greet := argument.Must(argument.NewAction("greet", func(*namespace.Namespace) error {
			called = true
			return nil
		}))
		root := MustNew(Config{}, Arg(greet), arg(argument.Argument{Name: "name", Required: true}))

		_, err := root.ParseArgs(context.Background(), tokens("--greet"))
		var exit *argument.Exit
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, 0, exit.Code)
		assert.True(t, called)
	})

	t.Run("version", func(t *testing.T) {
		root := MustNew(Config{}, arg(argument.Argument{Name: "version", Action: argument.Version, Const: "2.0"}))

		_, err := root.ParseArgs(context.Background(), tokens("--version"))
		var exit *argument.Exit
		require.ErrorAs(t, err, &exit)
		assert.Equal(t, "2.0", exit.Output)
	})

	t.Run("callback that does not exit", func(t *testing.T) {
		root := MustNew(Config{},
			arg(argument.Argument{Name: "loud", Action: argument.Callback, Callback: func(ns *namespace.Namespace) error {
				ns.Set("volume", 11)
				return nil
			}}),
		)

		ns, err := root.ParseArgs(context.Background(), tokens("--loud"))
		require.NoError(t, err)
		assert.Equal(t, 11, ns.Value("volume"))
		_, isFunc := ns.Value("loud").(argument.ActionFunc)
		assert.True(t, isFunc)
	})
}

func TestHooks(t *testing.T) {
	t.Run("validate error names the node", func(t *testing.T) {
		output := MustNew(Config{Validate: func(ns *namespace.Namespace) error {
			if ns.Value("scale").(int) > 100 {
				return errors.New("scale too big")
			}
			return nil
		}}, arg(argument.Argument{Name: "scale", Type: convert.Int, Default: 100}))
		root := MustNew(Config{Prog: "convert"}, Sub("output", output))

		_, err := root.ParseArgs(context.Background(), tokens("output --scale 200"))
		pe := requireParseError(t, err, KindValidation, "scale too big")
		assert.Equal(t, "output", pe.Node)
	})

	t.Run("produce may claim unknown tokens", func(t *testing.T) {
		root := MustNew(Config{Produce: func(ns *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
			ns.Set("extra", slices.Contains(unknown, "--extra"))
			return ns, slices.DeleteFunc(unknown, func(s string) bool { return s == "--extra" }), nil
		}})

		ns, err := root.ParseArgs(context.Background(), tokens("--extra"))
		require.NoError(t, err)
		assert.Equal(t, true, ns.Value("extra"))
	})

	t.Run("produce must return its namespace", func(t *testing.T) {
		root := MustNew(Config{Produce: func(_ *namespace.Namespace, unknown []string) (*namespace.Namespace, []string, error) {
			return namespace.New(), unknown, nil
		}})

		_, err := root.ParseArgs(context.Background(), nil)
		require.Error(t, err)
		var pe *ParseError
		assert.False(t, errors.As(err, &pe))
		assert.Contains(t, err.Error(), "produce hook must return the namespace it was given")
	})
}

func TestDefaults(t *testing.T) {
	root := MustNew(Config{Defaults: map[string]any{"mode": "fast"}}, arg(argument.Argument{Name: "x"}))

	ns, err := root.ParseArgs(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "fast", ns.Value("mode"))
	assert.Nil(t, ns.Value("x"))
}

func TestFromSignature(t *testing.T) {
	sig := docstring.Signature{
		Doc: `Raise base to the power of exponent.

    Args:
        base: the number to raise
        exponent: the power
`,
		Params: []docstring.Param{
			{Name: "base", Type: convert.Float, Required: true},
			{Name: "exponent", Type: convert.Int, Default: 2},
		},
	}

	t.Run("parameters only", func(t *testing.T) {
		root, err := FromSignature(Config{Prog: "calc"}, sig)
		require.NoError(t, err)

		ns, err := root.ParseArgs(context.Background(), tokens("2 --exponent 3"))
		require.NoError(t, err)
		assert.Equal(t, 2.0, ns.Value("base"))
		assert.Equal(t, 3, ns.Value("exponent"))

		ns, err = root.ParseArgs(context.Background(), tokens("2"))
		require.NoError(t, err)
		assert.Equal(t, 2, ns.Value("exponent"))

		assert.Contains(t, root.Help(), "Raise base to the power of exponent.")
		assert.Contains(t, root.Help(), "the number to raise")
	})

	t.Run("explicit declaration wins", func(t *testing.T) {
		root, err := FromSignature(Config{Prog: "calc"}, sig,
			arg(argument.Argument{Name: "exponent", Short: "n", Type: convert.Int, Default: 1}),
		)
		require.NoError(t, err)

		ns, err := root.ParseArgs(context.Background(), tokens("2 -n 4"))
		require.NoError(t, err)
		assert.Equal(t, 4, ns.Value("exponent"))

		ns, err = root.ParseArgs(context.Background(), tokens("2"))
		require.NoError(t, err)
		assert.Equal(t, 1, ns.Value("exponent"))
		assert.Contains(t, root.Help(), "the power (default: 1)")
	})
}

func TestUnrecognized_CarriesCandidates(t *testing.T) {
	_, err := greetings().ParseArgs(context.Background(), tokens("joe --cont 4"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"--cont", "4"}, pe.Unrecognized)
	assert.Equal(t, []string{"-c", "--count"}, pe.Candidates)
}
