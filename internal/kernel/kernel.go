// Package kernel holds the sum-of-squares reduction measured by the harness.
//
// There are two entry points that differ only in ownership. SumOfSquaresMove
// takes the container over and drains it, so its storage is released by the
// time the call returns. SumOfSquaresRef iterates a borrowed container and
// leaves it intact. Both exist so their costs can be measured separately.
//
// Squares are computed as x*x and summed in the container's natural
// iteration order. Results for the same multiset can differ in the last bits
// between kinds because the summation order differs. NaN and ±Inf propagate.
package kernel

import (
	"fmt"
	"iter"
	"strings"

	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/value"
)

// Inner is the part of the element contract the reduction needs.
type Inner interface {
	Inner() float64
}

// Owned is a container whose elements can be taken by value.
type Owned[V any] interface {
	Drain() iter.Seq[V]
}

// Borrowed is a container whose elements can be read in place.
type Borrowed[V any] interface {
	All() iter.Seq[V]
}

// SumOfSquaresMove consumes c and returns the sum of the squared values.
// c is empty afterwards.
func SumOfSquaresMove[V Inner](c Owned[V]) float64 {
	var sum float64
	for v := range c.Drain() {
		x := v.Inner()
		sum += x * x
	}
	return sum
}

// SumOfSquaresRef returns the sum of the squared values of c without
// modifying it.
func SumOfSquaresRef[V Inner](c Borrowed[V]) float64 {
	var sum float64
	for v := range c.All() {
		x := v.Inner()
		sum += x * x
	}
	return sum
}

// Process is the fixed demonstration workload: it consumes a slice.
func Process(data *container.Slice[value.Float]) float64 {
	return SumOfSquaresMove[value.Float](data)
}

// Mode is how the reduction receives its container.
type Mode int

const (
	ByReference Mode = iota
	ByValue
)

// Modes returns both modes, reference first.
func Modes() []Mode {
	return []Mode{ByReference, ByValue}
}

func (m Mode) String() string {
	switch m {
	case ByReference:
		return "by reference"
	case ByValue:
		return "by value"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Short returns the flag spelling: "ref" or "value".
func (m Mode) Short() string {
	switch m {
	case ByReference:
		return "ref"
	case ByValue:
		return "value"
	default:
		return m.String()
	}
}

// ParseMode accepts "ref", "reference", "by reference", "value", "move" or "by value".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ref", "reference", "by reference", "borrow":
		return ByReference, nil
	case "value", "val", "by value", "move":
		return ByValue, nil
	default:
		return 0, fmt.Errorf("unknown ownership mode %q: must be ref or value", s)
	}
}
