// Package cachelist provides a list that reorders itself by access count.
//
// Every successful Search increments the found element's count and moves it
// ahead of the first element whose count is not greater than its own. Insert
// always appends with a count of zero. The list is therefore ordered by count,
// most used first, only where Search has touched it; the tail is a usable
// eviction candidate.
//
// Misusing an iterator is a programming error and panics: dereferencing or
// erasing a sentinel, using an iterator whose element was erased, or passing
// an iterator that belongs to another list.
package cachelist

import (
	"github.com/venkatsvpr/cachekit/internal/arena"
)

const (
	front int32 = 0
	back  int32 = 1
)

type node[T comparable] struct {
	prev, next int32
	value      T
	access     int
}

// Entry is a snapshot of one element.
type Entry[T comparable] struct {
	Value       T
	AccessCount int
}

// List is an access-ordered list. The zero value is not usable; call New.
// It is not safe for concurrent use.
type List[T comparable] struct {
	nodes *arena.Arena[node[T]]
}

// New returns an empty list.
func New[T comparable]() *List[T] {
	l := &List[T]{}
	l.init()
	return l
}

func (l *List[T]) init() {
	l.nodes = arena.New[node[T]](2)
	l.nodes.Node(front).next = back
	l.nodes.Node(back).prev = front
}

func (l *List[T]) node(idx int32) *node[T] {
	return l.nodes.Node(idx)
}

func (l *List[T]) iter(idx int32) Iterator[T] {
	return Iterator[T]{list: l, nodes: l.nodes, h: l.nodes.Handle(idx)}
}

// Begin returns an iterator to the first element, or End if the list is empty.
func (l *List[T]) Begin() Iterator[T] {
	return l.iter(l.node(front).next)
}

// End returns the iterator one past the last element.
func (l *List[T]) End() Iterator[T] {
	return l.iter(back)
}

// Back returns an iterator to the last element, or the front sentinel if the
// list is empty. It equals End().Prev().
func (l *List[T]) Back() Iterator[T] {
	return l.iter(l.node(back).prev)
}

// CBegin is the read-only form of Begin.
func (l *List[T]) CBegin() ConstIterator[T] {
	return ConstIterator[T]{it: l.Begin()}
}

// CEnd is the read-only form of End.
func (l *List[T]) CEnd() ConstIterator[T] {
	return ConstIterator[T]{it: l.End()}
}

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool {
	return l.node(front).next == back
}

// Len counts the elements by walking the list.
func (l *List[T]) Len() int {
	n := 0
	for idx := l.node(front).next; idx != back; idx = l.node(idx).next {
		n++
	}
	return n
}

// linkBefore links the detached node idx immediately before at.
func (l *List[T]) linkBefore(idx, at int32) {
	n, a := l.node(idx), l.node(at)
	n.prev = a.prev
	n.next = at
	l.node(a.prev).next = idx
	a.prev = idx
}

func (l *List[T]) unlink(idx int32) {
	n := l.node(idx)
	l.node(n.prev).next = n.next
	l.node(n.next).prev = n.prev
}

// Insert appends v with an access count of zero.
func (l *List[T]) Insert(v T) {
	idx := l.nodes.Alloc(node[T]{value: v})
	l.linkBefore(idx, back)
}

// Search finds the first element equal to v, counts the access and moves the
// element forward. It returns an iterator at the element's new position, or
// End without modifying the list if v is not present.
func (l *List[T]) Search(v T) Iterator[T] {
	for idx := l.node(front).next; idx != back; idx = l.node(idx).next {
		if l.node(idx).value == v {
			l.node(idx).access++
			l.reposition(idx)
			return l.iter(idx)
		}
	}
	return l.End()
}

// reposition moves idx in front of the first other element, scanning from the
// head, whose count is less than or equal to its own. If there is none it
// stays put.
func (l *List[T]) reposition(idx int32) {
	count := l.node(idx).access
	for t := l.node(front).next; t != back; t = l.node(t).next {
		if t != idx && l.node(t).access <= count {
			l.unlink(idx)
			l.linkBefore(idx, t)
			return
		}
	}
}

// mustOwn panics unless it is a live iterator of l.
func (l *List[T]) mustOwn(it Iterator[T], op string) {
	if it.list != l {
		panic("cachelist: " + op + " with an iterator from another list")
	}
	it.mustValid()
}

// Erase removes the element at it and returns an iterator to its successor.
func (l *List[T]) Erase(it Iterator[T]) Iterator[T] {
	l.mustOwn(it, "erase")
	idx := it.h.Index
	if l.nodes.Kind(idx) != arena.Data {
		panic("cachelist: erase of a sentinel")
	}
	next := l.node(idx).next
	l.unlink(idx)
	l.nodes.Release(idx)
	return l.iter(next)
}

// EraseRange removes the elements in [first, last) and returns last. last must
// be reachable from first by moving forward.
func (l *List[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	l.mustOwn(first, "erase range")
	l.mustOwn(last, "erase range")
	if l.Empty() {
		return last
	}
	// Validate the whole range before erasing anything.
	for idx := first.h.Index; idx != last.h.Index; idx = l.node(idx).next {
		if idx == back {
			panic("cachelist: erase range end is not reachable from its start")
		}
	}
	for it := first; !it.Equal(last); {
		it = l.Erase(it)
	}
	return last
}

// Clear removes every element. All iterators other than End are invalidated.
func (l *List[T]) Clear() {
	for idx := l.node(front).next; idx != back; {
		next := l.node(idx).next
		l.nodes.Release(idx)
		idx = next
	}
	l.node(front).next = back
	l.node(back).prev = front
}

// Entries returns the elements with their access counts, head to tail.
func (l *List[T]) Entries() []Entry[T] {
	var out []Entry[T]
	for idx := l.node(front).next; idx != back; idx = l.node(idx).next {
		n := l.node(idx)
		out = append(out, Entry[T]{Value: n.value, AccessCount: n.access})
	}
	return out
}

// Values returns the elements head to tail.
func (l *List[T]) Values() []T {
	var out []T
	for idx := l.node(front).next; idx != back; idx = l.node(idx).next {
		out = append(out, l.node(idx).value)
	}
	return out
}

// Clone returns a deep copy that keeps order and access counts.
func (l *List[T]) Clone() *List[T] {
	c := New[T]()
	for idx := l.node(front).next; idx != back; idx = l.node(idx).next {
		n := l.node(idx)
		nn := c.nodes.Alloc(node[T]{value: n.value, access: n.access})
		c.linkBefore(nn, back)
	}
	return c
}

// Take moves every element into a new list and leaves l empty. Iterators
// into l are invalidated, including its End.
func (l *List[T]) Take() *List[T] {
	moved := &List[T]{nodes: l.nodes}
	l.init()
	return moved
}
