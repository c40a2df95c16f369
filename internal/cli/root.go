package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/locality/internal/harness"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml" | "prometheus"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml", "prometheus"}

// NewRootCommand creates the root command for the locality CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "locality",
		Short: "Container locality benchmarks",
		Long: `Measure how container shape affects a sum-of-squares reduction as
inputs grow from cache-resident to memory-resident sizes.

Without a subcommand, runs the demo: sums the squares of 1000 bytes of
random values held in a slice and prints the result.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), ErrUnsupportedFormat)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(&DemoOptions{RootOptions: opts, Bytes: harness.DemoBytes}, cmd)
		},
	}

	cmd.SetFlagErrorFunc(commandLineError)
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml|prometheus)")

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd, opts
}

// Execute runs the CLI with args and returns the process exit code. Errors
// are reported on errOut in the selected format; prometheus and invalid
// formats fall back to text.
func Execute(args []string, out, errOut io.Writer) int {
	cmd, opts := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	format := opts.Format
	if format != "json" && format != "yaml" {
		format = "text"
	}
	formatter := &OutputFormatter{Format: format, Writer: errOut}
	_ = formatter.Error(errorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return CodeUnsupportedFormat
	case GetExitCode(err) == ExitCommandError:
		return CodeInvalidConfig
	default:
		return CodeMeasurement
	}
}

// commandLineError marks cobra's flag and argument rejections as command
// errors. Subcommands inherit it as the root's flag error func.
func commandLineError(_ *cobra.Command, err error) error {
	return WrapExitError(ExitCommandError, "invalid command line", err)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return commandLineError(cmd, err)
	}
	return nil
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newLogger writes text logs to w, at Debug when verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
