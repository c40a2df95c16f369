package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/locality/internal/bench"
	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/datagen"
	"github.com/roach88/locality/internal/kernel"
	"github.com/roach88/locality/internal/sweep"
	"github.com/roach88/locality/internal/value"
)

// GroupName labels the benchmark group every sweep registers.
const GroupName = "Sum of squares"

// DemoBytes is the byte budget of the single-shot demo.
const DemoBytes = 1000

// Options configures a sweep.
type Options struct {
	Sweep sweep.Config

	// Kinds restricts the container kinds. Empty means all five.
	Kinds []container.Kind

	// Modes restricts the ownership modes. Empty means both.
	Modes []kernel.Mode

	Seed         uint64
	Distribution datagen.Distribution

	// Logger receives progress at Info and per-cell detail at Debug.
	// Nil discards.
	Logger *slog.Logger
}

// DefaultOptions sweeps every kind and mode over the default sizes.
func DefaultOptions() Options {
	return Options{
		Sweep:        sweep.DefaultConfig(),
		Distribution: datagen.Unit,
	}
}

// Validate checks the sweep eagerly along with the kind and mode filters.
func (o Options) Validate() error {
	if err := o.Sweep.Validate(); err != nil {
		return err
	}
	for _, k := range o.Kinds {
		if _, err := container.FactoryFor[value.Float](k); err != nil {
			return err
		}
	}
	for _, m := range o.Modes {
		if m != kernel.ByReference && m != kernel.ByValue {
			return fmt.Errorf("unknown mode %s", m)
		}
	}
	return nil
}

// kinds returns the requested kinds in catalog order without duplicates.
func (o Options) kinds() []container.Kind {
	if len(o.Kinds) == 0 {
		return container.Kinds()
	}
	return slices.DeleteFunc(container.Kinds(), func(k container.Kind) bool {
		return !slices.Contains(o.Kinds, k)
	})
}

// modes returns the requested modes, reference first.
func (o Options) modes() []kernel.Mode {
	if len(o.Modes) == 0 {
		return kernel.Modes()
	}
	return slices.DeleteFunc(kernel.Modes(), func(m kernel.Mode) bool {
		return !slices.Contains(o.Modes, m)
	})
}

type harness struct {
	runner bench.Runner
	src    *datagen.Source
	kinds  []container.Kind
	modes  []kernel.Mode
	logger *slog.Logger
	result *Result
}

// Run sweeps every requested cell through runner.
//
// The configuration is validated before any cell runs. A runner error or a
// cancelled context stops the sweep; the cells measured so far are returned
// alongside the error.
func Run(ctx context.Context, opts Options, runner bench.Runner) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ctrl, err := sweep.NewController(opts.Sweep)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &harness{
		runner: runner,
		src:    datagen.NewSource(opts.Seed, opts.Distribution),
		kinds:  opts.kinds(),
		modes:  opts.modes(),
		logger: logger,
		result: NewResult(),
	}

	logger.Info("sweep starting",
		"sizes", len(ctrl.Sizes()),
		"cells_per_size", len(h.kinds)*len(h.modes),
		"seed", opts.Seed,
		"distribution", opts.Distribution.String(),
	)

	runner.LabelGroup(GroupName)
	if err := ctrl.Run(ctx, h.visit); err != nil {
		return h.result, err
	}

	logger.Info("sweep complete", "cells", len(h.result.Cells))
	return h.result, nil
}

func (h *harness) visit(size sweep.Size) error {
	h.result.Sizes = append(h.result.Sizes, size)
	h.runner.SetThroughputHint(size.Bytes)
	h.logger.Info("measuring size", "size", size.String())

	// One template is alive at a time; each cell rebuilds its own from raw.
	raw := slices.Collect(datagen.Floats(h.src, size.Elements))

	for _, mode := range h.modes {
		for _, kind := range h.kinds {
			id := cellID(kind, mode, size)
			template, err := collect(kind, slices.Values(raw))
			if err != nil {
				return err
			}
			d, err := h.runner.RunTimedTrial(id, prepare(template, mode))
			if err != nil {
				return fmt.Errorf("cell %s: %w", id.Name(), err)
			}
			h.result.Cells = append(h.result.Cells, Cell{
				Kind:         kind,
				Mode:         mode,
				Size:         size,
				Distribution: d,
			})
			h.logger.Debug("cell measured", "cell", id.String())
		}
	}
	return nil
}

// collect builds a cell's template.
var collect = container.Collect[value.Float]

// prepare clones template per trial and binds the kernel for mode.
func prepare(template container.Collection[value.Float], mode kernel.Mode) bench.Prepare {
	setup := template.Clone
	if mode == kernel.ByValue {
		return bench.Trial(setup, func(c container.Collection[value.Float]) float64 {
			return kernel.SumOfSquaresMove[value.Float](c)
		})
	}
	return bench.Trial(setup, func(c container.Collection[value.Float]) float64 {
		return kernel.SumOfSquaresRef[value.Float](c)
	})
}

// Demo sums the squares of bytes/8 unit-range values drawn from seed,
// consuming the slice that holds them.
func Demo(seed uint64, bytes int) float64 {
	src := datagen.NewSource(seed, datagen.Unit)
	data := container.NewSlice(datagen.Floats(src, bytes/value.Size))
	return kernel.Process(data)
}
