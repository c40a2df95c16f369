package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/locality/internal/bench"
	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/kernel"
	"github.com/roach88/locality/internal/testutil"
)

func measurement(kind, mode, size string, bytes uint64, elements int, median, mean, p95 time.Duration, result string) *bench.Distribution {
	d := &bench.Distribution{
		ID:              bench.CellID{Kind: kind, Mode: mode, Size: size, Bytes: bytes, Elements: elements},
		Samples:         10,
		ThroughputBytes: bytes,
		Stats: bench.Stats{
			Min:     median,
			Max:     p95,
			Mean:    mean,
			Median:  median,
			P95:     p95,
			CILower: median,
			CIUpper: mean,
		},
		Result: result,
	}
	if result != "NaN" {
		d.Throughput = bench.Throughput{
			BytesPerSecond:    float64(bytes) / median.Seconds(),
			ElementsPerSecond: float64(elements) / median.Seconds(),
		}
	}
	return d
}

func fixtureReport() *bench.Report {
	cfg := bench.DefaultConfig()
	cfg.Warmup = 2
	cfg.Samples = 10

	return &bench.Report{
		RunID:  testutil.NewFixedRunID("").Generate(),
		Config: cfg,
		Groups: []*bench.Group{{
			Name: "Sum of squares",
			Plot: bench.PlotConfig{SummaryScale: bench.AxisLog, SamplingMode: bench.SamplingLinear},
			Measurements: []*bench.Distribution{
				measurement("List", "by value", "1.0 KiB", 1024, 128, 4000, 4500, 12345, "42.5"),
				measurement("Slice", "by reference", "1.0 KiB", 1024, 128, 1000, 1200, 2000, "42.5"),
				measurement("Deque", "by reference", "4.0 KiB", 4096, 512, 3000, 3000, 3000, "NaN"),
			},
		}},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCellName(t *testing.T) {
	assert.Equal(t, "Slice (by reference)", CellName(container.KindSlice, kernel.ByReference))
	assert.Equal(t, "TreeSet (by value)", CellName(container.KindTreeSet, kernel.ByValue))
	assert.Equal(t, "Slice (by reference)", Baseline)
}

func TestRate(t *testing.T) {
	assert.Equal(t, "-", rate(0))
	assert.Equal(t, "1.0 KiB/s", rate(1024))
	assert.Equal(t, "64 MiB/s", rate(64<<20))
}

func TestCompare(t *testing.T) {
	rankings := Compare(fixtureReport())
	require.Len(t, rankings, 2)

	small := rankings[0]
	assert.Equal(t, "1.0 KiB", small.Size)
	require.Len(t, small.Entries, 2)
	assert.Equal(t, RankEntry{Rank: 1, Cell: "Slice (by reference)", Median: 1000, Speedup: 1}, small.Entries[0])
	assert.Equal(t, RankEntry{Rank: 2, Cell: "List (by value)", Median: 4000, Speedup: 0.25}, small.Entries[1])

	// No baseline measured at this size
	large := rankings[1]
	assert.Equal(t, uint64(4096), large.Bytes)
	require.Len(t, large.Entries, 1)
	assert.Zero(t, large.Entries[0].Speedup)
}

func TestCompare_TiesKeepRegistrationOrder(t *testing.T) {
	r := fixtureReport()
	g := r.Groups[0]
	g.Measurements = []*bench.Distribution{
		measurement("Deque", "by value", "1.0 KiB", 1024, 128, 1000, 1000, 1000, "1"),
		measurement("Slice", "by reference", "1.0 KiB", 1024, 128, 1000, 1000, 1000, "1"),
	}

	entries := Compare(r)[0].Entries
	assert.Equal(t, "Deque (by value)", entries[0].Cell)
	assert.Equal(t, "Slice (by reference)", entries[1].Cell)
}

func TestRender_TextGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewDocument(fixtureReport(), true), FormatText))

	newGoldie(t).Assert(t, "report_text", buf.Bytes())
}

func TestRender_JSONGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewDocument(fixtureReport(), true), FormatJSON))

	newGoldie(t).Assert(t, "report_json", buf.Bytes())
}

func TestRender_TextWithoutComparison(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewDocument(fixtureReport(), false), FormatText))

	assert.NotContains(t, buf.String(), "Comparison")
	assert.Contains(t, buf.String(), "12,345 ns")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewDocument(fixtureReport(), false), FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testutil.DefaultRunID, decoded["run_id"])
	assert.NotContains(t, decoded, "comparison")

	groups, ok := decoded["groups"].([]any)
	require.True(t, ok)
	require.Len(t, groups, 1)
	group := groups[0].(map[string]any)
	assert.Equal(t, "Sum of squares", group["name"])
	assert.Len(t, group["measurements"], 3)
}

func TestRender_Prometheus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewDocument(fixtureReport(), false), FormatPrometheus))
	out := buf.String()

	assert.Contains(t, out, "# TYPE locality_cell_median_seconds gauge")
	assert.Contains(t, out, `locality_cell_median_seconds{bytes="1024",group="Sum of squares",kind="Slice",mode="by reference",size="1.0 KiB"} 1e-06`)
	assert.Contains(t, out, `locality_cell_samples{bytes="4096",group="Sum of squares",kind="Deque",mode="by reference",size="4.0 KiB"} 10`)
	assert.Contains(t, out, "# TYPE locality_cell_throughput_bytes_per_second gauge")
}

func TestGather(t *testing.T) {
	families, err := Gather(NewDocument(fixtureReport(), false))
	require.NoError(t, err)
	require.Len(t, families, 6)

	for _, mf := range families {
		assert.Len(t, mf.GetMetric(), 3, mf.GetName())
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, NewDocument(fixtureReport(), false), Format("xml"))
	assert.Error(t, err)
}
