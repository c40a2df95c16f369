package container

import (
	"iter"

	"github.com/roach88/locality/internal/value"
)

const minHashSetCap = 8

// HashSet is an open-addressing set with linear probing on Element.Hash.
// Iteration follows slot order, which is deterministic for a given
// insertion sequence.
type HashSet[V value.Element[V]] struct {
	slots []V
	used  []bool
	n     int
}

// NewHashSet inserts every value of seq; equal values are stored once,
// keeping the first occurrence.
func NewHashSet[V value.Element[V]](seq iter.Seq[V]) *HashSet[V] {
	s := &HashSet[V]{}
	for v := range seq {
		s.Insert(v)
	}
	return s
}

func (s *HashSet[V]) Kind() Kind { return KindHashSet }

func (s *HashSet[V]) Len() int { return s.n }

func (s *HashSet[V]) capacity() int { return len(s.slots) }

// find returns the slot holding v, or the empty slot where v would go.
func (s *HashSet[V]) find(v V) (int, bool) {
	mask := len(s.slots) - 1
	i := int(v.Hash() & uint64(mask))
	for s.used[i] {
		if s.slots[i].Compare(v) == 0 {
			return i, true
		}
		i = (i + 1) & mask
	}
	return i, false
}

// Insert adds v and reports whether it was not already present.
func (s *HashSet[V]) Insert(v V) bool {
	// Keep the load factor at or below 3/4.
	if (s.n+1)*4 > len(s.slots)*3 {
		s.resize(max(minHashSetCap, 2*len(s.slots)))
	}
	i, ok := s.find(v)
	if ok {
		return false
	}
	s.slots[i] = v
	s.used[i] = true
	s.n++
	return true
}

func (s *HashSet[V]) contains(v V) bool {
	if s.n == 0 {
		return false
	}
	_, ok := s.find(v)
	return ok
}

func (s *HashSet[V]) resize(capacity int) {
	slots, used := s.slots, s.used
	s.slots = make([]V, capacity)
	s.used = make([]bool, capacity)
	for i, u := range used {
		if u {
			j, _ := s.find(slots[i])
			s.slots[j] = slots[i]
			s.used[j] = true
		}
	}
}

func (s *HashSet[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i, u := range s.used {
			if u && !yield(s.slots[i]) {
				return
			}
		}
	}
}

func (s *HashSet[V]) Drain() iter.Seq[V] {
	return func(yield func(V) bool) {
		slots, used := s.slots, s.used
		s.slots, s.used, s.n = nil, nil, 0
		for i, u := range used {
			if u && !yield(slots[i]) {
				return
			}
		}
	}
}

// Clone copies the slot table as is, so the clone iterates in the same order.
func (s *HashSet[V]) Clone() Collection[V] {
	c := &HashSet[V]{
		slots: make([]V, len(s.slots)),
		used:  make([]bool, len(s.used)),
		n:     s.n,
	}
	copy(c.slots, s.slots)
	copy(c.used, s.used)
	return c
}
