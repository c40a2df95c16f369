package cli

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/locality/internal/bench"
	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/datagen"
	"github.com/roach88/locality/internal/harness"
	"github.com/roach88/locality/internal/kernel"
	"github.com/roach88/locality/internal/report"
	"github.com/roach88/locality/internal/sweep"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions

	StartPow2 int
	EndPow2   int
	StepPow2  int

	Samples    int
	Warmup     int
	Batch      int
	KeepAll    bool
	Confidence float64
	Sampling   string

	Seed    uint64
	Dist    string
	Kinds   []string
	Modes   []string
	Compare bool

	// Clock and RunIDs override the engine defaults (for testing).
	Clock  bench.Clock
	RunIDs bench.RunIDGenerator
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	return newSweepCommand(&SweepOptions{RootOptions: rootOpts})
}

func newSweepCommand(opts *SweepOptions) *cobra.Command {
	defaults := sweep.DefaultConfig()
	benchDefaults := bench.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure every container kind and mode across a size sweep",
		Long: `Sweep byte budgets 2^start, 2^(start+step), ... up to 2^end. At every size,
measure the sum-of-squares kernel over each container kind, first borrowing
the container and then consuming it. Each trial works on a fresh copy of the
generated input; copying is never timed.

Example:
  locality sweep
  locality sweep --start-pow2 10 --end-pow2 16 --samples 50 --compare
  locality sweep --kinds slice,list --modes value --format prometheus`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, cmd)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.StartPow2, "start-pow2", defaults.StartPow2, "log2 of the first byte budget")
	f.IntVar(&opts.EndPow2, "end-pow2", defaults.EndPow2, "log2 of the last byte budget")
	f.IntVar(&opts.StepPow2, "step-pow2", defaults.StepPow2, "log2 of the growth factor between sizes")
	f.IntVar(&opts.Samples, "samples", benchDefaults.Samples, "timed samples per cell")
	f.IntVar(&opts.Warmup, "warmup", benchDefaults.Warmup, "untimed operations before sampling")
	f.IntVar(&opts.Batch, "batch", benchDefaults.BatchSize, "operations timed together per sample")
	f.BoolVar(&opts.KeepAll, "keep-outliers", false, "do not drop samples outside the IQR fence")
	f.Float64Var(&opts.Confidence, "confidence", benchDefaults.ConfidenceLevel, "confidence level of the mean interval (0.9|0.95|0.99)")
	f.StringVar(&opts.Sampling, "sampling", string(bench.SamplingLinear), "iteration growth between samples (linear|flat)")
	f.Uint64Var(&opts.Seed, "seed", 0, "generator seed (random when unset)")
	f.StringVar(&opts.Dist, "dist", datagen.Unit.String(), "value distribution (unit|full)")
	f.StringSliceVar(&opts.Kinds, "kinds", nil, "container kinds to measure (default all)")
	f.StringSliceVar(&opts.Modes, "modes", nil, "ownership modes to measure: ref, value (default both)")
	f.BoolVar(&opts.Compare, "compare", false, "rank cells per size against Slice (by reference)")

	return cmd
}

func (o *SweepOptions) harnessOptions(cmd *cobra.Command) (harness.Options, error) {
	hopts := harness.Options{
		Sweep: sweep.Config{StartPow2: o.StartPow2, EndPow2: o.EndPow2, StepPow2: o.StepPow2},
		Seed:  o.Seed,
	}
	if f := cmd.Flags().Lookup("seed"); f == nil || !f.Changed {
		hopts.Seed = rand.Uint64()
	}

	dist, err := datagen.ParseDistribution(o.Dist)
	if err != nil {
		return hopts, err
	}
	hopts.Distribution = dist

	for _, s := range o.Kinds {
		k, err := container.ParseKind(s)
		if err != nil {
			return hopts, err
		}
		hopts.Kinds = append(hopts.Kinds, k)
	}
	for _, s := range o.Modes {
		m, err := kernel.ParseMode(s)
		if err != nil {
			return hopts, err
		}
		hopts.Modes = append(hopts.Modes, m)
	}
	return hopts, nil
}

func (o *SweepOptions) benchConfig() bench.Config {
	cfg := bench.DefaultConfig()
	cfg.Samples = o.Samples
	cfg.Warmup = o.Warmup
	cfg.BatchSize = o.Batch
	cfg.RemoveOutliers = !o.KeepAll
	cfg.ConfidenceLevel = o.Confidence
	return cfg
}

func runSweep(opts *SweepOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid format", err)
	}

	hopts, err := opts.harnessOptions(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid sweep flags", err)
	}
	hopts.Logger = logger

	// Reject a bad sweep before building anything else.
	if err := hopts.Sweep.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "sweep rejected", err)
	}

	sampling, err := bench.ParseSamplingMode(opts.Sampling)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid sampling configuration", err)
	}
	engineOpts := []bench.Option{
		bench.WithLogger(logger),
		bench.WithPlot(bench.PlotConfig{SummaryScale: bench.AxisLog, SamplingMode: sampling}),
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, bench.WithClock(opts.Clock))
	}
	if opts.RunIDs != nil {
		engineOpts = append(engineOpts, bench.WithRunIDGenerator(opts.RunIDs))
	}
	engine, err := bench.NewEngine(opts.benchConfig(), engineOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid sampling configuration", err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := harness.Run(ctx, hopts, engine); err != nil {
		switch {
		case errors.Is(err, sweep.ErrInvalidConfig):
			return WrapExitError(ExitCommandError, "sweep rejected", err)
		case errors.Is(err, context.Canceled):
			return WrapExitError(ExitFailure, "sweep interrupted", err)
		default:
			return WrapExitError(ExitFailure, "measurement failed", err)
		}
	}

	doc := report.NewDocument(engine.Report(), opts.Compare)
	if err := report.Render(cmd.OutOrStdout(), doc, format); err != nil {
		return WrapExitError(ExitFailure, "failed to render report", err)
	}
	return nil
}
