package report

import (
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "locality"

var cellLabels = []string{"group", "kind", "mode", "size", "bytes"}

type cellGauges struct {
	median     *prometheus.GaugeVec
	mean       *prometheus.GaugeVec
	p95        *prometheus.GaugeVec
	stddev     *prometheus.GaugeVec
	throughput *prometheus.GaugeVec
	samples    *prometheus.GaugeVec
}

func newCellGauges(reg prometheus.Registerer) (*cellGauges, error) {
	gauge := func(name, help string) (*prometheus.GaugeVec, error) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cell",
			Name:      name,
			Help:      help,
		}, cellLabels)
		return g, reg.Register(g)
	}

	var (
		c   cellGauges
		err error
	)
	if c.median, err = gauge("median_seconds", "Median per-operation duration."); err != nil {
		return nil, err
	}
	if c.mean, err = gauge("mean_seconds", "Mean per-operation duration."); err != nil {
		return nil, err
	}
	if c.p95, err = gauge("p95_seconds", "95th percentile per-operation duration."); err != nil {
		return nil, err
	}
	if c.stddev, err = gauge("stddev_seconds", "Standard deviation of per-operation duration."); err != nil {
		return nil, err
	}
	if c.throughput, err = gauge("throughput_bytes_per_second", "Bytes processed per second at the median."); err != nil {
		return nil, err
	}
	if c.samples, err = gauge("samples", "Samples behind the statistics after outlier removal."); err != nil {
		return nil, err
	}
	return &c, nil
}

// Gather records every measurement of doc into a fresh registry and
// returns the gathered metric families.
func Gather(doc *Document) ([]*dto.MetricFamily, error) {
	reg := prometheus.NewRegistry()
	gauges, err := newCellGauges(reg)
	if err != nil {
		return nil, err
	}

	for _, g := range doc.Groups {
		for _, d := range g.Measurements {
			labels := prometheus.Labels{
				"group": g.Name,
				"kind":  d.ID.Kind,
				"mode":  d.ID.Mode,
				"size":  d.ID.Size,
				"bytes": strconv.FormatUint(d.ID.Bytes, 10),
			}
			gauges.median.With(labels).Set(d.Stats.Median.Seconds())
			gauges.mean.With(labels).Set(d.Stats.Mean.Seconds())
			gauges.p95.With(labels).Set(d.Stats.P95.Seconds())
			gauges.stddev.With(labels).Set(d.Stats.StdDev.Seconds())
			gauges.throughput.With(labels).Set(d.Throughput.BytesPerSecond)
			gauges.samples.With(labels).Set(float64(d.Samples))
		}
	}
	return reg.Gather()
}

func renderPrometheus(w io.Writer, doc *Document) error {
	families, err := Gather(doc)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
