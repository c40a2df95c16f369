package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/locality/internal/sweep"
)

const (
	sizeWidth = 10
	cellWidth = 24
	numWidth  = 14
)

func renderText(w io.Writer, doc *Document) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	cfg := doc.Config
	fmt.Fprintf(&b, "Run %s\n", doc.RunID)
	fmt.Fprintf(&b, "Config: warmup=%d samples=%d batch=%d outliers=%s confidence=%.0f%%\n",
		cfg.Warmup, cfg.Samples, cfg.BatchSize, outlierSetting(cfg.RemoveOutliers, cfg.OutlierThreshold), cfg.ConfidenceLevel*100)

	for _, g := range doc.Groups {
		fmt.Fprintf(&b, "\n== %s (summary scale: %s, sampling: %s) ==\n", g.Name, g.Plot.SummaryScale, g.Plot.SamplingMode)
		fmt.Fprintf(&b, "%-*s %-*s %*s %*s %*s %*s  %s\n",
			sizeWidth, "SIZE", cellWidth, "CELL",
			numWidth, "MEDIAN", numWidth, "MEAN", numWidth, "P95", numWidth, "THROUGHPUT", "RESULT")
		for _, d := range g.Measurements {
			fmt.Fprintf(&b, "%-*s %-*s %*s %*s %*s %*s  %s\n",
				sizeWidth, d.ID.Size, cellWidth, d.ID.Name(),
				numWidth, nanos(p, d.Stats.Median),
				numWidth, nanos(p, d.Stats.Mean),
				numWidth, nanos(p, d.Stats.P95),
				numWidth, rate(d.Throughput.BytesPerSecond),
				d.Result)
		}
	}

	if len(doc.Comparison) > 0 {
		fmt.Fprintf(&b, "\n== Comparison vs %s ==\n", Baseline)
		for _, rk := range doc.Comparison {
			fmt.Fprintf(&b, "%s\n", rk.Size)
			for _, e := range rk.Entries {
				fmt.Fprintf(&b, "  %2d. %-*s %*s  %s\n",
					e.Rank, cellWidth, e.Cell, numWidth, nanos(p, e.Median), speedup(e.Speedup))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func outlierSetting(enabled bool, k float64) string {
	if !enabled {
		return "kept"
	}
	return fmt.Sprintf("%gxIQR", k)
}

// nanos renders a duration in grouped nanoseconds, e.g. "12,345 ns".
func nanos(p *message.Printer, d time.Duration) string {
	return p.Sprintf("%d ns", d.Nanoseconds())
}

func rate(bytesPerSecond float64) string {
	if bytesPerSecond <= 0 {
		return "-"
	}
	return sweep.ByteLabel(uint64(bytesPerSecond)) + "/s"
}

func speedup(s float64) string {
	if s == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", s)
}
