package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/roach88/locality/internal/bench"
)

// Ranking orders the cells measured at one size.
type Ranking struct {
	Size    string      `json:"size" yaml:"size"`
	Bytes   uint64      `json:"bytes" yaml:"bytes"`
	Entries []RankEntry `json:"entries" yaml:"entries"`
}

// RankEntry is one cell's place within a Ranking.
type RankEntry struct {
	Rank   int           `json:"rank" yaml:"rank"`
	Cell   string        `json:"cell" yaml:"cell"`
	Median time.Duration `json:"median_ns" yaml:"median_ns"`

	// Speedup is the baseline median over this cell's median; above 1 means
	// faster than the baseline. Zero when the size has no usable baseline.
	Speedup float64 `json:"speedup" yaml:"speedup"`
}

// Compare ranks cells per size by ascending median. Sizes appear in the
// order they were first measured; ties keep registration order.
func Compare(r *bench.Report) []Ranking {
	var rankings []Ranking
	index := make(map[uint64]int)
	baselines := make(map[uint64]time.Duration)

	for _, d := range r.Measurements() {
		i, ok := index[d.ID.Bytes]
		if !ok {
			i = len(rankings)
			index[d.ID.Bytes] = i
			rankings = append(rankings, Ranking{Size: d.ID.Size, Bytes: d.ID.Bytes})
		}
		name := d.ID.Name()
		if name == Baseline {
			baselines[d.ID.Bytes] = d.Stats.Median
		}
		rankings[i].Entries = append(rankings[i].Entries, RankEntry{
			Cell:   name,
			Median: d.Stats.Median,
		})
	}

	for i := range rankings {
		rk := &rankings[i]
		slices.SortStableFunc(rk.Entries, func(a, b RankEntry) int {
			return cmp.Compare(a.Median, b.Median)
		})
		base := baselines[rk.Bytes]
		for j := range rk.Entries {
			e := &rk.Entries[j]
			e.Rank = j + 1
			if base > 0 && e.Median > 0 {
				e.Speedup = float64(base) / float64(e.Median)
			}
		}
	}
	return rankings
}
