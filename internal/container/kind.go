package container

import (
	"fmt"
	"iter"
	"strings"

	"github.com/roach88/locality/internal/value"
)

// Kind identifies one container shape.
type Kind int

const (
	KindSlice Kind = iota
	KindDeque
	KindList
	KindHashSet
	KindTreeSet
)

var kindNames = [...]string{
	KindSlice:   "Slice",
	KindDeque:   "Deque",
	KindList:    "List",
	KindHashSet: "HashSet",
	KindTreeSet: "TreeSet",
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	return []Kind{KindSlice, KindDeque, KindList, KindHashSet, KindTreeSet}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Contiguous reports whether elements live in one backing array.
func (k Kind) Contiguous() bool {
	return k == KindSlice || k == KindDeque
}

// Ordered reports whether iteration follows the element order.
func (k Kind) Ordered() bool {
	return k == KindTreeSet
}

// Coalesces reports whether equal values are stored once.
func (k Kind) Coalesces() bool {
	return k == KindHashSet || k == KindTreeSet
}

// ParseKind accepts a kind name case-insensitively ("slice", "HashSet", ...).
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown container kind %q: must be one of %v", s, Kinds())
}

// Collection is the capability every shape provides.
type Collection[V any] interface {
	Kind() Kind
	Len() int

	// All yields every element in the shape's natural order without
	// modifying the collection.
	All() iter.Seq[V]

	// Drain yields every element in natural order and empties the
	// collection, releasing its storage.
	Drain() iter.Seq[V]

	// Clone returns an independent copy with the same elements and layout.
	Clone() Collection[V]
}

// Factory builds a collection from a sequence of values.
type Factory[V any] func(seq iter.Seq[V]) Collection[V]

// Entry pairs a kind with its factory.
type Entry[V any] struct {
	Kind Kind
	New  Factory[V]
}

// Catalog returns the fixed set of shapes in declaration order.
func Catalog[V value.Element[V]]() []Entry[V] {
	return []Entry[V]{
		{Kind: KindSlice, New: func(seq iter.Seq[V]) Collection[V] { return NewSlice(seq) }},
		{Kind: KindDeque, New: func(seq iter.Seq[V]) Collection[V] { return NewDeque(seq) }},
		{Kind: KindList, New: func(seq iter.Seq[V]) Collection[V] { return NewList(seq) }},
		{Kind: KindHashSet, New: func(seq iter.Seq[V]) Collection[V] { return NewHashSet(seq) }},
		{Kind: KindTreeSet, New: func(seq iter.Seq[V]) Collection[V] { return NewTreeSet(seq) }},
	}
}

// FactoryFor returns the factory registered for kind.
func FactoryFor[V value.Element[V]](kind Kind) (Factory[V], error) {
	for _, e := range Catalog[V]() {
		if e.Kind == kind {
			return e.New, nil
		}
	}
	return nil, fmt.Errorf("no factory for container kind %v", kind)
}

// Collect builds a collection of the given kind from seq.
func Collect[V value.Element[V]](kind Kind, seq iter.Seq[V]) (Collection[V], error) {
	f, err := FactoryFor[V](kind)
	if err != nil {
		return nil, err
	}
	return f(seq), nil
}
