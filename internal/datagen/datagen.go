// Package datagen produces the scrambled input containers for each trial.
//
// Generation runs during trial setup and is never part of the timed region.
// A Source is seeded explicitly so a sweep can be reproduced.
package datagen

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"

	"github.com/roach88/locality/internal/value"
)

// Distribution selects how raw float64 values are sampled.
type Distribution int

const (
	// Unit samples uniformly from [0, 1).
	Unit Distribution = iota
	// FullRange samples uniformly over all 64-bit patterns, so NaN and
	// ±Inf occur and propagate through the reduction.
	FullRange
)

func (d Distribution) String() string {
	switch d {
	case Unit:
		return "unit"
	case FullRange:
		return "full"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}

// ParseDistribution accepts "unit" or "full".
func ParseDistribution(s string) (Distribution, error) {
	switch s {
	case "unit":
		return Unit, nil
	case "full":
		return FullRange, nil
	default:
		return 0, fmt.Errorf("unknown distribution %q: must be unit or full", s)
	}
}

// Source is a seeded, process-local pseudo-random generator. Not safe for
// concurrent use.
type Source struct {
	rng  *rand.Rand
	dist Distribution
	seed uint64
}

// NewSource returns a PCG-backed source. Equal seeds give equal streams.
func NewSource(seed uint64, dist Distribution) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		dist: dist,
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 { return s.seed }

// Distribution returns the sampling distribution.
func (s *Source) Distribution() Distribution { return s.dist }

// Float64 draws one raw value.
func (s *Source) Float64() float64 {
	if s.dist == FullRange {
		return math.Float64frombits(s.rng.Uint64())
	}
	return s.rng.Float64()
}

// Raw yields n raw values.
func (s *Source) Raw(n int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := 0; i < n; i++ {
			if !yield(s.Float64()) {
				return
			}
		}
	}
}

// Floats yields n values wrapped as value.Float.
func Floats(src *Source, n int) iter.Seq[value.Float] {
	return Map(src.Raw(n), value.New)
}

// Map applies create to every raw value of seq.
func Map[V any](seq iter.Seq[float64], create func(float64) V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for raw := range seq {
			if !yield(create(raw)) {
				return
			}
		}
	}
}

// Generate builds one container of n independent values by feeding the
// wrapped sample stream to collect.
func Generate[V any, C any](src *Source, n int, create func(float64) V, collect func(iter.Seq[V]) C) C {
	return collect(Map(src.Raw(n), create))
}
