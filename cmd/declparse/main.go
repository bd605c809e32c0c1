package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/declparse/internal/cli"
)

// main is the entrypoint for the declparse tool.
func main() {
	// Use a minimal logger until an App configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	os.Exit(exitCode(os.Stderr, run(os.Stdout, os.Stderr, os.Args[1:])))
}

// run executes the command tree for args.
func run(outW, errW io.Writer, args []string) error {
	cmd := cli.NewRootCommand(outW, errW)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// exitCode prints what err still has to say and maps it to a status.
func exitCode(errW io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(errW, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(errW, err)
	return 1
}
