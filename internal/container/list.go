package container

import (
	"iter"

	"github.com/roach88/locality/internal/value"
)

type node[V any] struct {
	prev, next *node[V]
	val        V
}

// List is a doubly-linked list with one heap node per element.
type List[V value.Element[V]] struct {
	head, tail *node[V]
	n          int
}

// NewList pushes every value of seq to the back.
func NewList[V value.Element[V]](seq iter.Seq[V]) *List[V] {
	l := &List[V]{}
	for v := range seq {
		l.PushBack(v)
	}
	return l
}

func (l *List[V]) Kind() Kind { return KindList }

func (l *List[V]) Len() int { return l.n }

// PushBack appends v.
func (l *List[V]) PushBack(v V) {
	e := &node[V]{prev: l.tail, val: v}
	if l.tail == nil {
		l.head = e
	} else {
		l.tail.next = e
	}
	l.tail = e
	l.n++
}

func (l *List[V]) pushFront(v V) {
	e := &node[V]{next: l.head, val: v}
	if l.head == nil {
		l.tail = e
	} else {
		l.head.prev = e
	}
	l.head = e
	l.n++
}

func (l *List[V]) popFront() (V, bool) {
	var zero V
	e := l.head
	if e == nil {
		return zero, false
	}
	l.head = e.next
	if l.head == nil {
		l.tail = nil
	} else {
		l.head.prev = nil
	}
	e.next = nil
	l.n--
	return e.val, true
}

func (l *List[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := l.head; e != nil; e = e.next {
			if !yield(e.val) {
				return
			}
		}
	}
}

// Drain unlinks each node before yielding its value, so consumed nodes
// become unreachable while the walk is still in progress.
func (l *List[V]) Drain() iter.Seq[V] {
	return func(yield func(V) bool) {
		e := l.head
		l.head, l.tail, l.n = nil, nil, 0
		for e != nil {
			next := e.next
			e.next = nil
			if next != nil {
				next.prev = nil
			}
			if !yield(e.val) {
				return
			}
			e = next
		}
	}
}

func (l *List[V]) Clone() Collection[V] {
	c := &List[V]{}
	for e := l.head; e != nil; e = e.next {
		c.PushBack(e.val)
	}
	return c
}
