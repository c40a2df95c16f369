package bench_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/locality/internal/bench"
	"github.com/roach88/locality/internal/testutil"
)

func testConfig() bench.Config {
	cfg := bench.DefaultConfig()
	cfg.Warmup = 2
	cfg.Samples = 10
	return cfg
}

func newEngine(t *testing.T, cfg bench.Config, clock bench.Clock, opts ...bench.Option) *bench.Engine {
	t.Helper()
	opts = append([]bench.Option{
		bench.WithClock(clock),
		bench.WithRunIDGenerator(testutil.NewFixedRunID("")),
	}, opts...)
	e, err := bench.NewEngine(cfg, opts...)
	require.NoError(t, err)
	return e
}

var cell = bench.CellID{
	Kind:     "Slice",
	Mode:     "by reference",
	Size:     "1.0 KiB",
	Bytes:    1024,
	Elements: 128,
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bench.Config)
	}{
		{"negative warmup", func(c *bench.Config) { c.Warmup = -1 }},
		{"zero samples", func(c *bench.Config) { c.Samples = 0 }},
		{"zero batch", func(c *bench.Config) { c.BatchSize = 0 }},
		{"zero threshold", func(c *bench.Config) { c.OutlierThreshold = 0 }},
		{"confidence one", func(c *bench.Config) { c.ConfidenceLevel = 1 }},
		{"confidence zero", func(c *bench.Config) { c.ConfidenceLevel = 0 }},
		{"confidence without table", func(c *bench.Config) { c.ConfidenceLevel = 0.5 }},
		{"confidence between tables", func(c *bench.Config) { c.ConfidenceLevel = 0.97 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bench.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, bench.ErrInvalidConfig)

			_, err = bench.NewEngine(cfg)
			assert.ErrorIs(t, err, bench.ErrInvalidConfig)
		})
	}

	for _, level := range bench.ConfidenceLevels() {
		cfg := bench.DefaultConfig()
		cfg.ConfidenceLevel = level
		assert.NoError(t, cfg.Validate(), level)
	}
}

func TestTrial_SetupIsFreshPerCall(t *testing.T) {
	setups := 0
	prepare := bench.Trial(
		func() []float64 { setups++; return []float64{3, 4} },
		func(xs []float64) float64 { return xs[0]*xs[0] + xs[1]*xs[1] },
	)

	op1 := prepare()
	op2 := prepare()
	assert.Equal(t, 2, setups)
	assert.Equal(t, 25.0, op1())
	assert.Equal(t, 25.0, op2())
	assert.Equal(t, 2, setups, "running an op must not call setup")
}

var flat = bench.WithPlot(bench.PlotConfig{SummaryScale: bench.AxisLog, SamplingMode: bench.SamplingFlat})

func TestEngine_RunTimedTrial(t *testing.T) {
	clock := testutil.NewStepClock(time.Microsecond)
	e := newEngine(t, testConfig(), clock, flat)

	e.LabelGroup("Sum of squares")
	e.SetThroughputHint(1024)

	setups := 0
	d, err := e.RunTimedTrial(cell, bench.Trial(
		func() int { setups++; return setups },
		func(int) float64 { return 25 },
	))
	require.NoError(t, err)

	// Warmup plus one input per sample
	assert.Equal(t, 2+10, setups)
	// Two clock reads per sample, none during warmup
	assert.Equal(t, 20, clock.Calls())

	assert.Equal(t, cell, d.ID)
	assert.Equal(t, 10, d.Samples)
	assert.Equal(t, 0, d.Outliers)
	assert.Len(t, d.Raw, 10)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, d.Iterations)
	assert.Equal(t, uint64(1024), d.ThroughputBytes)
	assert.Equal(t, time.Microsecond, d.Stats.Median)
	assert.Equal(t, time.Microsecond, d.Stats.Min)
	assert.Equal(t, time.Microsecond, d.Stats.Max)
	assert.InDelta(t, 1.024e9, d.Throughput.BytesPerSecond, 1)
	assert.InDelta(t, 1.28e8, d.Throughput.ElementsPerSecond, 1)
	assert.Equal(t, "25", d.Result)
}

func TestEngine_BatchDividesElapsed(t *testing.T) {
	cfg := testConfig()
	cfg.BatchSize = 4
	clock := testutil.NewStepClock(8 * time.Microsecond)
	e := newEngine(t, cfg, clock)
	e.LabelGroup("batched")

	setups := 0
	d, err := e.RunTimedTrial(cell, bench.Trial(
		func() int { setups++; return 0 },
		func(int) float64 { return 1 },
	))
	require.NoError(t, err)

	// Linear sampling: sample n runs n batches of four
	assert.Equal(t, 2+55*4, setups)
	assert.Equal(t, []int{4, 8, 12, 16, 20, 24, 28, 32, 36, 40}, d.Iterations)
	assert.Equal(t, 2*time.Microsecond, d.Stats.Median)
}

func TestEngine_LinearSampling(t *testing.T) {
	clock := testutil.NewStepClock(time.Microsecond)
	e := newEngine(t, testConfig(), clock)
	e.LabelGroup("linear")

	ops := 0
	d, err := e.RunTimedTrial(cell, func() func() float64 {
		return func() float64 { ops++; return 0 }
	})
	require.NoError(t, err)

	// Warmup plus 1+2+...+10 timed operations
	assert.Equal(t, 2+55, ops)
	// Two clock reads per batch
	assert.Equal(t, 2*55, clock.Calls())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, d.Iterations)
	for _, raw := range d.Raw {
		assert.Equal(t, time.Microsecond, raw)
	}
}

func TestEngine_LinearSamplingDividesByOps(t *testing.T) {
	// Steps alternate so every batch lasts 3µs: sample n sums n batches.
	clock := testutil.NewStepClock(3*time.Microsecond, 5*time.Microsecond)
	cfg := testConfig()
	cfg.Samples = 3
	cfg.BatchSize = 3
	cfg.RemoveOutliers = false
	e := newEngine(t, cfg, clock)
	e.LabelGroup("linear")

	d, err := e.RunTimedTrial(cell, bench.Trial(func() int { return 0 }, func(int) float64 { return 0 }))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 6, 9}, d.Iterations)
	assert.Equal(t, []time.Duration{time.Microsecond, time.Microsecond, time.Microsecond}, d.Raw)
}

func TestParseSamplingMode(t *testing.T) {
	for _, m := range []bench.SamplingMode{bench.SamplingLinear, bench.SamplingFlat} {
		got, err := bench.ParseSamplingMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := bench.ParseSamplingMode("auto")
	assert.ErrorIs(t, err, bench.ErrInvalidConfig)
}

func TestEngine_NaNResultIsReported(t *testing.T) {
	e := newEngine(t, testConfig(), testutil.NewStepClock())
	e.LabelGroup("nan")

	d, err := e.RunTimedTrial(cell, func() func() float64 {
		return func() float64 { return nanValue() }
	})
	require.NoError(t, err)
	assert.Equal(t, "NaN", d.Result)
}

func TestEngine_RequiresGroup(t *testing.T) {
	e := newEngine(t, testConfig(), testutil.NewStepClock())

	_, err := e.RunTimedTrial(cell, bench.Trial(
		func() int { return 0 },
		func(int) float64 { return 0 },
	))
	assert.True(t, errors.Is(err, bench.ErrNoGroup))
}

func TestEngine_Report(t *testing.T) {
	e := newEngine(t, testConfig(), testutil.NewStepClock())
	prepare := bench.Trial(func() int { return 0 }, func(int) float64 { return 0 })

	e.LabelGroup("first")
	_, err := e.RunTimedTrial(cell, prepare)
	require.NoError(t, err)

	e.LabelGroup("second")
	other := cell
	other.Kind = "Deque"
	_, err = e.RunTimedTrial(other, prepare)
	require.NoError(t, err)

	r := e.Report()
	assert.Equal(t, testutil.DefaultRunID, r.RunID)
	assert.Equal(t, testConfig(), r.Config)
	require.Len(t, r.Groups, 2)
	assert.Equal(t, "first", r.Groups[0].Name)
	assert.Equal(t, bench.AxisLog, r.Groups[0].Plot.SummaryScale)
	assert.Equal(t, bench.SamplingLinear, r.Groups[0].Plot.SamplingMode)

	ms := r.Measurements()
	require.Len(t, ms, 2)
	assert.Equal(t, "Slice (by reference)", ms[0].ID.Name())
	assert.Equal(t, "Deque (by reference)", ms[1].ID.Name())
}

func TestUUIDv7Generator(t *testing.T) {
	gen := bench.UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestCellID_String(t *testing.T) {
	assert.Equal(t, "Slice (by reference) @ 1.0 KiB", cell.String())
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}
