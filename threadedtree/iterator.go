package threadedtree

import (
	"cmp"

	"github.com/venkatsvpr/cachekit/internal/arena"
)

// Iterator walks a Tree in order. Values are read-only: changing a value in
// place could break the ordering.
type Iterator[T cmp.Ordered] struct {
	tree  *Tree[T]
	nodes *arena.Arena[node[T]]
	h     arena.Handle
}

// Valid reports whether the iterator refers to a live position.
func (it Iterator[T]) Valid() bool {
	return it.tree != nil && it.tree.nodes == it.nodes && it.nodes.Valid(it.h)
}

func (it Iterator[T]) mustValid() {
	if !it.Valid() {
		panic("threadedtree: use of an invalid iterator")
	}
}

// IsSentinel reports whether the iterator is at End or before the smallest
// value.
func (it Iterator[T]) IsSentinel() bool {
	it.mustValid()
	return it.nodes.Kind(it.h.Index) == arena.Sentinel
}

// Value returns the value. It panics on a sentinel.
func (it Iterator[T]) Value() T {
	if it.IsSentinel() {
		panic("threadedtree: dereference of a sentinel")
	}
	return it.nodes.Node(it.h.Index).value
}

// Next moves to the next larger value. Next of End is End.
func (it Iterator[T]) Next() Iterator[T] {
	it.mustValid()
	t, idx := it.tree, it.h.Index
	switch idx {
	case back:
		return it
	case front:
		return t.Begin()
	}
	r := t.node(idx).right
	if r.kind == thread {
		return t.iter(r.to)
	}
	return t.iter(t.leftmost(r.to))
}

// Prev moves to the next smaller value. Prev of End is the largest value;
// Prev of the smallest value is the front sentinel, whose Prev is itself.
func (it Iterator[T]) Prev() Iterator[T] {
	it.mustValid()
	t, idx := it.tree, it.h.Index
	switch idx {
	case front:
		return it
	case back:
		if t.root == none {
			return t.iter(front)
		}
		return t.iter(t.rightmost(t.root))
	}
	l := t.node(idx).left
	if l.kind == thread {
		return t.iter(l.to)
	}
	return t.iter(t.rightmost(l.to))
}

// Equal reports whether both iterators refer to the same position of the
// same tree.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.tree == o.tree && it.nodes == o.nodes && it.h == o.h
}
