package bench

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Clock supplies timestamps for sampling.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// RunIDGenerator names a run.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable run ids.
type UUIDv7Generator struct{}

// Generate returns a hyphenated UUIDv7. It panics if the system entropy
// source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// sink receives every operation result so the timed work stays observable.
var sink float64

// AxisScale is the scale of a group's summary plot.
type AxisScale string

const (
	AxisLinear AxisScale = "linear"
	AxisLog    AxisScale = "log"
)

// SamplingMode describes how iteration counts grow between samples.
type SamplingMode string

const (
	// SamplingLinear runs sample n (from 1) as n batches, so later samples
	// time more operations and clock overhead shrinks per operation.
	SamplingLinear SamplingMode = "linear"
	// SamplingFlat runs every sample as a single batch.
	SamplingFlat SamplingMode = "flat"
)

// ParseSamplingMode parses "linear" or "flat".
func ParseSamplingMode(s string) (SamplingMode, error) {
	switch m := SamplingMode(s); m {
	case SamplingLinear, SamplingFlat:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown sampling mode %q", ErrInvalidConfig, s)
}

// PlotConfig is reporting metadata attached to a group.
type PlotConfig struct {
	SummaryScale AxisScale    `json:"summary_scale" yaml:"summary_scale"`
	SamplingMode SamplingMode `json:"sampling_mode" yaml:"sampling_mode"`
}

// Group is a named set of cells sharing a throughput axis.
type Group struct {
	Name         string          `json:"name" yaml:"name"`
	Plot         PlotConfig      `json:"plot" yaml:"plot"`
	Measurements []*Distribution `json:"measurements" yaml:"measurements"`
}

// Report is everything an Engine measured.
type Report struct {
	RunID  string   `json:"run_id" yaml:"run_id"`
	Config Config   `json:"config" yaml:"config"`
	Groups []*Group `json:"groups" yaml:"groups"`
}

// Measurements returns every distribution across groups in registration order.
func (r *Report) Measurements() []*Distribution {
	var out []*Distribution
	for _, g := range r.Groups {
		out = append(out, g.Measurements...)
	}
	return out
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger. Trials log at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRunIDGenerator replaces the UUIDv7 run id generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) { e.runIDs = g }
}

// WithPlot sets the plot config for groups labelled afterwards.
func WithPlot(p PlotConfig) Option {
	return func(e *Engine) { e.plot = p }
}

// Engine is the sampling Runner.
//
// Engine is not safe for concurrent use; cells are measured one at a time.
type Engine struct {
	cfg    Config
	clock  Clock
	logger *slog.Logger
	runIDs RunIDGenerator
	plot   PlotConfig

	groups []*Group
	hint   uint64
}

var _ Runner = (*Engine)(nil)

// NewEngine validates cfg and returns an Engine.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		clock:  wallClock{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs: UUIDv7Generator{},
		plot:   PlotConfig{SummaryScale: AxisLog, SamplingMode: SamplingLinear},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the sampling configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// LabelGroup implements Runner.
func (e *Engine) LabelGroup(name string) {
	e.groups = append(e.groups, &Group{Name: name, Plot: e.plot})
	e.logger.Debug("group labelled", "group", name)
}

// SetThroughputHint implements Runner.
func (e *Engine) SetThroughputHint(bytes uint64) {
	e.hint = bytes
}

// RunTimedTrial implements Runner.
func (e *Engine) RunTimedTrial(id CellID, prepare Prepare) (*Distribution, error) {
	if len(e.groups) == 0 {
		return nil, ErrNoGroup
	}
	group := e.groups[len(e.groups)-1]

	var last float64
	for range e.cfg.Warmup {
		last = prepare()()
		sink = last
	}

	raw := make([]time.Duration, 0, e.cfg.Samples)
	iters := make([]int, 0, e.cfg.Samples)
	batch := make([]func() float64, e.cfg.BatchSize)
	for n := range e.cfg.Samples {
		chunks := 1
		if group.Plot.SamplingMode == SamplingLinear {
			chunks = n + 1
		}
		var elapsed time.Duration
		for range chunks {
			var d time.Duration
			d, last = e.timeBatch(prepare, batch)
			elapsed += d
		}
		ops := chunks * len(batch)
		raw = append(raw, elapsed/time.Duration(ops))
		iters = append(iters, ops)
	}

	kept := raw
	if e.cfg.RemoveOutliers {
		kept = RemoveOutliers(raw, e.cfg.OutlierThreshold)
	}
	stats, err := Summarize(kept, e.cfg.ConfidenceLevel)
	if err != nil {
		return nil, err
	}

	d := &Distribution{
		ID:              id,
		Samples:         len(kept),
		Outliers:        len(raw) - len(kept),
		ThroughputBytes: e.hint,
		Stats:           stats,
		Throughput:      throughputOf(e.hint, id.Elements, stats.Median),
		Result:          strconv.FormatFloat(last, 'g', -1, 64),
		Raw:             raw,
		Iterations:      iters,
	}
	group.Measurements = append(group.Measurements, d)

	e.logger.Debug("trial complete",
		"cell", id.String(),
		"median", stats.Median,
		"samples", d.Samples,
		"outliers", d.Outliers,
	)
	return d, nil
}

// timeBatch prepares one input per batch slot untimed, then times running
// them back to back.
func (e *Engine) timeBatch(prepare Prepare, batch []func() float64) (time.Duration, float64) {
	for i := range batch {
		batch[i] = prepare()
	}
	var last float64
	start := e.clock.Now()
	for _, op := range batch {
		last = op()
		sink = last
	}
	elapsed := e.clock.Now().Sub(start)
	clear(batch)
	return elapsed, last
}

// Report snapshots every group measured so far under a fresh run id.
func (e *Engine) Report() *Report {
	groups := make([]*Group, len(e.groups))
	copy(groups, e.groups)
	return &Report{
		RunID:  e.runIDs.Generate(),
		Config: e.cfg,
		Groups: groups,
	}
}
