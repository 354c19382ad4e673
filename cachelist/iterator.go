package cachelist

import (
	"github.com/venkatsvpr/cachekit/internal/arena"
)

// Iterator refers to one position of a List: an element or one of the two
// sentinels. Iterators do not own anything; an iterator becomes invalid when
// its element is erased or the list is cleared or taken.
type Iterator[T comparable] struct {
	list  *List[T]
	nodes *arena.Arena[node[T]]
	h     arena.Handle
}

// Valid reports whether the iterator still refers to a live position.
func (it Iterator[T]) Valid() bool {
	return it.list != nil && it.list.nodes == it.nodes && it.nodes.Valid(it.h)
}

func (it Iterator[T]) mustValid() {
	if !it.Valid() {
		panic("cachelist: use of an invalidated iterator")
	}
}

func (it Iterator[T]) data() *node[T] {
	it.mustValid()
	if it.nodes.Kind(it.h.Index) != arena.Data {
		panic("cachelist: dereference of a sentinel")
	}
	return it.nodes.Node(it.h.Index)
}

// IsSentinel reports whether the iterator is at End or before the first
// element.
func (it Iterator[T]) IsSentinel() bool {
	it.mustValid()
	return it.nodes.Kind(it.h.Index) == arena.Sentinel
}

// Next moves one element towards the tail. Next of End is End.
func (it Iterator[T]) Next() Iterator[T] {
	it.mustValid()
	if it.h.Index == back {
		return it
	}
	return it.list.iter(it.nodes.Node(it.h.Index).next)
}

// Prev moves one element towards the head. Prev of End is the last element;
// Prev of the first element is the front sentinel, whose Prev is itself.
func (it Iterator[T]) Prev() Iterator[T] {
	it.mustValid()
	if it.h.Index == front {
		return it
	}
	return it.list.iter(it.nodes.Node(it.h.Index).prev)
}

// Value returns the element. It panics on a sentinel.
func (it Iterator[T]) Value() T {
	return it.data().value
}

// Set replaces the element's value in place. The access count is kept.
func (it Iterator[T]) Set(v T) {
	it.data().value = v
}

// AccessCount returns how many times Search has found the element.
func (it Iterator[T]) AccessCount() int {
	return it.data().access
}

// Equal reports whether both iterators refer to the same position of the same
// list. Iterators of different lists are never equal.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.list == o.list && it.nodes == o.nodes && it.h == o.h
}

// Const returns a read-only view of the same position.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it: it}
}

// ConstIterator is a read-only Iterator.
type ConstIterator[T comparable] struct {
	it Iterator[T]
}

func (c ConstIterator[T]) Valid() bool { return c.it.Valid() }
func (c ConstIterator[T]) IsSentinel() bool { return c.it.IsSentinel() }
func (c ConstIterator[T]) Next() ConstIterator[T] { return ConstIterator[T]{it: c.it.Next()} }
func (c ConstIterator[T]) Prev() ConstIterator[T] { return ConstIterator[T]{it: c.it.Prev()} }
func (c ConstIterator[T]) Value() T { return c.it.Value() }
func (c ConstIterator[T]) AccessCount() int { return c.it.AccessCount() }
func (c ConstIterator[T]) Equal(o ConstIterator[T]) bool { return c.it.Equal(o.it) }
