package bench

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Stats summarises one cell's per-operation durations.
type Stats struct {
	Min     time.Duration `json:"min_ns" yaml:"min_ns"`
	Max     time.Duration `json:"max_ns" yaml:"max_ns"`
	Mean    time.Duration `json:"mean_ns" yaml:"mean_ns"`
	Median  time.Duration `json:"median_ns" yaml:"median_ns"`
	StdDev  time.Duration `json:"stddev_ns" yaml:"stddev_ns"`
	P95     time.Duration `json:"p95_ns" yaml:"p95_ns"`
	CILower time.Duration `json:"ci_lower_ns" yaml:"ci_lower_ns"`
	CIUpper time.Duration `json:"ci_upper_ns" yaml:"ci_upper_ns"`
}

// Summarize computes Stats over samples. confidenceLevel must be one of
// ConfidenceLevels.
func Summarize(samples []time.Duration, confidenceLevel float64) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrNoSamples
	}
	if !slices.Contains(ConfidenceLevels(), confidenceLevel) {
		return Stats{}, fmt.Errorf("%w: unsupported confidence level %g", ErrInvalidConfig, confidenceLevel)
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mean := meanOf(samples)
	sd := math.Sqrt(varianceOf(samples, mean))
	lo, hi := confidenceInterval(mean, sd, len(samples), confidenceLevel)

	return Stats{
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Mean:    time.Duration(mean),
		Median:  Percentile(sorted, 0.5),
		StdDev:  time.Duration(sd),
		P95:     Percentile(sorted, 0.95),
		CILower: time.Duration(lo),
		CIUpper: time.Duration(hi),
	}, nil
}

// Percentile returns the p-th quantile of sorted (ascending), interpolating
// linearly between neighbouring samples.
func Percentile(sorted []time.Duration, p float64) time.Duration {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}

	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return time.Duration(float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac)
}

// RemoveOutliers keeps samples inside [Q1 - k*IQR, Q3 + k*IQR], preserving
// their order. Fewer than four samples, or a fence that would drop more
// than half of them, return samples unchanged.
func RemoveOutliers(samples []time.Duration, k float64) []time.Duration {
	if len(samples) < 4 {
		return samples
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	q1 := Percentile(sorted, 0.25)
	q3 := Percentile(sorted, 0.75)
	iqr := float64(q3 - q1)
	lower := float64(q1) - k*iqr
	upper := float64(q3) + k*iqr

	kept := make([]time.Duration, 0, len(samples))
	for _, s := range samples {
		if f := float64(s); f >= lower && f <= upper {
			kept = append(kept, s)
		}
	}
	if len(kept) < len(samples)/2 {
		return samples
	}
	return kept
}

func meanOf(samples []time.Duration) float64 {
	var sum float64
	for _, s := range samples {
		sum += float64(s)
	}
	return sum / float64(len(samples))
}

// varianceOf is the population variance.
func varianceOf(samples []time.Duration, mean float64) float64 {
	var sum float64
	for _, s := range samples {
		d := float64(s) - mean
		sum += d * d
	}
	return sum / float64(len(samples))
}

func confidenceInterval(mean, sd float64, n int, level float64) (float64, float64) {
	if n < 2 {
		return mean, mean
	}
	margin := criticalValue(n-1, level) * sd / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}

// Two-tailed Student's t critical values for df 1..29.
var (
	t90 = []float64{6.314, 2.920, 2.353, 2.132, 2.015, 1.943, 1.895, 1.860, 1.833, 1.812,
		1.796, 1.782, 1.771, 1.761, 1.753, 1.746, 1.740, 1.734, 1.729, 1.725,
		1.721, 1.717, 1.714, 1.711, 1.708, 1.706, 1.703, 1.701, 1.699}
	t95 = []float64{12.706, 4.303, 3.182, 2.776, 2.571, 2.447, 2.365, 2.306, 2.262, 2.228,
		2.201, 2.179, 2.160, 2.145, 2.131, 2.120, 2.110, 2.101, 2.093, 2.086,
		2.080, 2.074, 2.069, 2.064, 2.060, 2.056, 2.052, 2.048, 2.045}
	t99 = []float64{63.657, 9.925, 5.841, 4.604, 4.032, 3.707, 3.499, 3.355, 3.250, 3.169,
		3.106, 3.055, 3.012, 2.977, 2.947, 2.921, 2.898, 2.878, 2.861, 2.845,
		2.831, 2.819, 2.807, 2.797, 2.787, 2.779, 2.771, 2.763, 2.756}
)

// ConfidenceLevels lists the levels with critical value tables.
func ConfidenceLevels() []float64 {
	return []float64{0.90, 0.95, 0.99}
}

func criticalValue(df int, level float64) float64 {
	table, z := t90, 1.645
	switch level {
	case 0.99:
		table, z = t99, 2.576
	case 0.95:
		table, z = t95, 1.960
	}
	if df < 1 {
		df = 1
	}
	if df > len(table) {
		return z
	}
	return table[df-1]
}
