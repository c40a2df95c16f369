package container

import (
	"iter"

	"github.com/google/btree"

	"github.com/roach88/locality/internal/value"
)

// treeDegree gives nodes of 5 to 11 items.
const treeDegree = 6

// TreeSet is an ordered set backed by a B-tree.
type TreeSet[V value.Element[V]] struct {
	tree *btree.BTreeG[V]
}

func newTree[V value.Element[V]]() *btree.BTreeG[V] {
	return btree.NewG(treeDegree, func(a, b V) bool { return a.Compare(b) < 0 })
}

// NewTreeSet inserts every value of seq; equal values are stored once,
// keeping the first occurrence.
func NewTreeSet[V value.Element[V]](seq iter.Seq[V]) *TreeSet[V] {
	s := &TreeSet[V]{tree: newTree[V]()}
	for v := range seq {
		s.Insert(v)
	}
	return s
}

func (s *TreeSet[V]) Kind() Kind { return KindTreeSet }

func (s *TreeSet[V]) Len() int { return s.tree.Len() }

// Insert adds v and reports whether it was not already present.
func (s *TreeSet[V]) Insert(v V) bool {
	if s.tree.Has(v) {
		return false
	}
	s.tree.ReplaceOrInsert(v)
	return true
}

func (s *TreeSet[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		s.tree.Ascend(func(v V) bool {
			return yield(v)
		})
	}
}

// Drain swaps in an empty tree, walks the old one in ascending order and
// then drops its nodes.
func (s *TreeSet[V]) Drain() iter.Seq[V] {
	return func(yield func(V) bool) {
		t := s.tree
		s.tree = newTree[V]()
		t.Ascend(func(v V) bool {
			return yield(v)
		})
		t.Clear(false)
	}
}

// Clone builds fresh nodes; btree.Clone would share them copy-on-write
// with the source.
func (s *TreeSet[V]) Clone() Collection[V] {
	c := &TreeSet[V]{tree: newTree[V]()}
	s.tree.Ascend(func(v V) bool {
		c.tree.ReplaceOrInsert(v)
		return true
	})
	return c
}
