package container

import (
	"iter"

	"github.com/roach88/locality/internal/value"
)

const minDequeCap = 8

// Deque is a double-ended queue over a power-of-two ring buffer.
type Deque[V value.Element[V]] struct {
	buf  []V
	head int
	n    int
}

// NewDeque pushes every value of seq to the back.
func NewDeque[V value.Element[V]](seq iter.Seq[V]) *Deque[V] {
	d := &Deque[V]{}
	for v := range seq {
		d.PushBack(v)
	}
	return d
}

func (d *Deque[V]) Kind() Kind { return KindDeque }

func (d *Deque[V]) Len() int { return d.n }

func (d *Deque[V]) mask() int { return len(d.buf) - 1 }

// grow doubles the buffer and unwraps the elements to start at index 0.
func (d *Deque[V]) grow() {
	buf := make([]V, max(minDequeCap, 2*len(d.buf)))
	first, second := d.segments()
	k := copy(buf, first)
	copy(buf[k:], second)
	d.buf = buf
	d.head = 0
}

// segments returns the occupied region as at most two contiguous runs.
func (d *Deque[V]) segments() ([]V, []V) {
	end := min(d.head+d.n, len(d.buf))
	first := d.buf[d.head:end]
	second := d.buf[:d.n-len(first)]
	return first, second
}

// PushBack appends v.
func (d *Deque[V]) PushBack(v V) {
	if d.n == len(d.buf) {
		d.grow()
	}
	d.buf[(d.head+d.n)&d.mask()] = v
	d.n++
}

func (d *Deque[V]) pushFront(v V) {
	if d.n == len(d.buf) {
		d.grow()
	}
	d.head = (d.head - 1) & d.mask()
	d.buf[d.head] = v
	d.n++
}

func (d *Deque[V]) popFront() (V, bool) {
	var zero V
	if d.n == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) & d.mask()
	d.n--
	return v, true
}

func (d *Deque[V]) popBack() (V, bool) {
	var zero V
	if d.n == 0 {
		return zero, false
	}
	i := (d.head + d.n - 1) & d.mask()
	v := d.buf[i]
	d.buf[i] = zero
	d.n--
	return v, true
}

func (d *Deque[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		first, second := d.segments()
		for _, v := range first {
			if !yield(v) {
				return
			}
		}
		for _, v := range second {
			if !yield(v) {
				return
			}
		}
	}
}

func (d *Deque[V]) Drain() iter.Seq[V] {
	return func(yield func(V) bool) {
		first, second := d.segments()
		d.buf, d.head, d.n = nil, 0, 0
		for _, v := range first {
			if !yield(v) {
				return
			}
		}
		for _, v := range second {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone copies the elements into a buffer of the same capacity, unwrapped.
func (d *Deque[V]) Clone() Collection[V] {
	c := &Deque[V]{buf: make([]V, len(d.buf)), n: d.n}
	first, second := d.segments()
	k := copy(c.buf, first)
	copy(c.buf[k:], second)
	return c
}
