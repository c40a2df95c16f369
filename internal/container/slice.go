package container

import (
	"iter"
	"slices"

	"github.com/roach88/locality/internal/value"
)

// Slice is a contiguous growable array.
type Slice[V value.Element[V]] struct {
	items []V
}

// NewSlice collects seq in order.
func NewSlice[V value.Element[V]](seq iter.Seq[V]) *Slice[V] {
	return &Slice[V]{items: slices.Collect(seq)}
}

// SliceOf wraps a copy of items.
func SliceOf[V value.Element[V]](items ...V) *Slice[V] {
	return &Slice[V]{items: slices.Clone(items)}
}

func (s *Slice[V]) Kind() Kind { return KindSlice }

func (s *Slice[V]) Len() int { return len(s.items) }

func (s *Slice[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Drain detaches the backing array up front; it is reclaimed in one step
// once the caller's iteration ends.
func (s *Slice[V]) Drain() iter.Seq[V] {
	return func(yield func(V) bool) {
		items := s.items
		s.items = nil
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Slice[V]) Clone() Collection[V] {
	return &Slice[V]{items: slices.Clone(s.items)}
}
