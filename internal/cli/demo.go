package cli

import (
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/locality/internal/harness"
	"github.com/roach88/locality/internal/value"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Bytes int
	Seed  uint64
}

// DemoResult is the outcome of one demo run.
type DemoResult struct {
	Seed     uint64  `json:"seed" yaml:"seed"`
	Bytes    int     `json:"bytes" yaml:"bytes"`
	Elements int     `json:"elements" yaml:"elements"`
	Sum      float64 `json:"sum" yaml:"sum"`
}

// String is the bare sum, the demo's text output.
func (r DemoResult) String() string {
	return strconv.FormatFloat(r.Sum, 'g', -1, 64)
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Sum the squares of random values in a slice",
		Long: `Generate random unit-range values, hold them in a slice and consume the
slice with the sum-of-squares kernel. Prints the sum.

Without --seed a random seed is used; the chosen seed appears in json and
yaml output.

Example:
  locality demo
  locality demo --bytes 4096 --seed 42 --format json`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Bytes, "bytes", harness.DemoBytes, "byte budget of the input")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "generator seed (random when unset)")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	if opts.Format == "prometheus" {
		return WrapExitError(ExitCommandError, "format prometheus is only supported by sweep", ErrUnsupportedFormat)
	}
	if opts.Bytes < 0 {
		return NewExitError(ExitCommandError, "--bytes must be non-negative")
	}

	seed := opts.Seed
	if f := cmd.Flags().Lookup("seed"); f == nil || !f.Changed {
		seed = rand.Uint64()
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(DemoResult{
		Seed:     seed,
		Bytes:    opts.Bytes,
		Elements: opts.Bytes / value.Size,
		Sum:      harness.Demo(seed, opts.Bytes),
	})
}
