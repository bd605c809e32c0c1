package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/declparse/internal/app"
	"github.com/specialistvlad/declparse/internal/report"
)

// ExitError is a custom error type that includes a specific exit code. An
// empty Message means the diagnostics were already written.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

type options struct {
	logLevel  string
	logFormat string
	output    string
	get       string
	schema    string
}

// NewRootCommand builds the declparse command tree. Results go to outW,
// diagnostics and logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "declparse",
		Short: "Check, inspect and run command-line parsers declared in HCL",
		Long: `declparse loads a parser tree declared in .hcl files and runs it over
command-line tokens, printing the resulting namespace.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	root.AddCommand(
		newCheckCommand(opts),
		newUsageCommand(opts),
		newParseCommand(opts),
		newRenderCommand(opts),
	)
	return root
}

// load validates the flags and builds the App for the declaration in path.
// Only parse prints a namespace, so the other commands pass an empty output
// and get the default.
func load(cmd *cobra.Command, opts *options, path, output string) (*app.App, *app.Config, error) {
	slog.Debug("CLI loading declaration.", "path", path)
	cfg, err := app.NewConfig(app.Config{
		DeclarationPath: path,
		LogLevel:        strings.ToLower(opts.logLevel),
		LogFormat:       strings.ToLower(opts.logFormat),
		OutputFormat:    strings.ToLower(output),
	})
	if err != nil {
		return nil, nil, &ExitError{Code: 2, Message: err.Error()}
	}
	a, err := app.NewApp(cmd.Context(), cmd.ErrOrStderr(), cfg, coreModules...)
	if err != nil {
		return nil, nil, &ExitError{Code: 1, Message: err.Error()}
	}
	return a, cfg, nil
}

// tokensAfterDash returns the arguments meant for the declared parser: the
// ones after "--", or everything after the declaration path. The path
// itself is never one of them, even when it follows the dash.
func tokensAfterDash(cmd *cobra.Command, args []string) []string {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[max(at, 1):]
	}
	return args[1:]
}

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check DECLARATION",
		Short: "Load a declaration and report whether it is valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := load(cmd, opts, args[0], "")
			if err != nil {
				return err
			}
			root := a.Root()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d arguments, %d sub-parsers)\n",
				root.Prog(), len(root.Arguments()), len(root.Children()))
			return nil
		},
	}
}

func newUsageCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "usage DECLARATION",
		Short: "Print the help text of a declared parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := load(cmd, opts, args[0], "")
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.Root().Help())
			return nil
		},
	}
}

func newParseCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse DECLARATION -- [ARGS...]",
		Short: "Parse arguments with a declared parser and print the namespace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := load(cmd, opts, args[0], opts.output)
			if err != nil {
				return err
			}

			var schema *app.Schema
			if opts.schema != "" {
				if schema, err = app.LoadSchema(opts.schema); err != nil {
					return &ExitError{Code: 1, Message: err.Error()}
				}
			}

			rep := report.New(a.Root().Prog(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			ns, err := a.Parse(cmd.Context(), tokensAfterDash(cmd, args))
			if err != nil {
				if status := rep.Report(err); status != 0 {
					return &ExitError{Code: status}
				}
				return nil
			}

			var value any = ns
			if opts.get != "" {
				if value, err = ns.Lookup(opts.get); err != nil {
					return &ExitError{Code: 1, Message: err.Error()}
				}
			}
			if schema != nil {
				if err := schema.Check(value); err != nil {
					return &ExitError{Code: 1, Message: err.Error()}
				}
			}
			return app.Write(cmd.OutOrStdout(), cfg.OutputFormat, value)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", app.OutputText, "Output format. Options: 'text', 'json', 'yaml', 'hcl', 'cbor'.")
	cmd.Flags().StringVar(&opts.get, "get", "", "Print only the field at this path, e.g. 'output.scale' or 'counts[1]'.")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Check the namespace against a JSON schema file.")
	return cmd
}

func newRenderCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render DECLARATION -- [ARGS...]",
		Short: "Parse arguments and print their canonical spelling",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := load(cmd, opts, args[0], "")
			if err != nil {
				return err
			}
			tokens, err := a.Render(cmd.Context(), tokensAfterDash(cmd, args))
			if err != nil {
				rep := report.New(a.Root().Prog(), cmd.OutOrStdout(), cmd.ErrOrStderr())
				if status := rep.Report(err); status != 0 {
					return &ExitError{Code: status}
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
			return nil
		},
	}
}
