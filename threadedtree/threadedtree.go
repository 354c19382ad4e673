// Package threadedtree provides an ordered set backed by an unbalanced,
// threaded binary search tree.
//
// A side of a node without a child holds a thread to the node's in-order
// predecessor (left) or successor (right) instead, so iteration in both
// directions needs neither a parent pointer nor a stack. The smallest node's
// left thread ends at a front sentinel and the largest node's right thread at
// a back sentinel, which is End.
package threadedtree

import (
	"cmp"

	"github.com/venkatsvpr/cachekit/internal/arena"
)

const (
	front int32 = 0
	back  int32 = 1
	none  int32 = -1
)

type edgeKind uint8

const (
	thread edgeKind = iota
	child
)

// edge is one side of a node: a real child or an in-order thread.
type edge struct {
	kind edgeKind
	to   int32
}

func childEdge(idx int32) edge  { return edge{kind: child, to: idx} }
func threadEdge(idx int32) edge { return edge{kind: thread, to: idx} }

type node[T cmp.Ordered] struct {
	value       T
	left, right edge
}

// Tree is an ordered set. The zero value is not usable; call New. It is not
// safe for concurrent use.
type Tree[T cmp.Ordered] struct {
	nodes *arena.Arena[node[T]]
	root  int32
}

// New returns an empty tree.
func New[T cmp.Ordered]() *Tree[T] {
	return &Tree[T]{nodes: arena.New[node[T]](2), root: none}
}

func (t *Tree[T]) node(idx int32) *node[T] {
	return t.nodes.Node(idx)
}

func (t *Tree[T]) iter(idx int32) Iterator[T] {
	return Iterator[T]{tree: t, nodes: t.nodes, h: t.nodes.Handle(idx)}
}

// Insert adds v and reports whether it was added. Inserting a value that is
// already present does nothing.
func (t *Tree[T]) Insert(v T) bool {
	if t.root == none {
		t.root = t.nodes.Alloc(node[T]{value: v, left: threadEdge(front), right: threadEdge(back)})
		return true
	}

	cur := t.root
	for {
		n := t.node(cur)
		switch {
		case v < n.value:
			if n.left.kind == child {
				cur = n.left.to
				continue
			}
			idx := t.nodes.Alloc(node[T]{value: v, left: n.left, right: threadEdge(cur)})
			// Alloc may grow the arena; n is stale from here on.
			t.node(cur).left = childEdge(idx)
			return true
		case v > n.value:
			if n.right.kind == child {
				cur = n.right.to
				continue
			}
			idx := t.nodes.Alloc(node[T]{value: v, left: threadEdge(cur), right: n.right})
			t.node(cur).right = childEdge(idx)
			return true
		default:
			return false
		}
	}
}

// Find returns an iterator to v, or End if it is not present.
func (t *Tree[T]) Find(v T) Iterator[T] {
	cur := t.root
	for cur != none {
		n := t.node(cur)
		var e edge
		switch {
		case v < n.value:
			e = n.left
		case v > n.value:
			e = n.right
		default:
			return t.iter(cur)
		}
		if e.kind == thread {
			break
		}
		cur = e.to
	}
	return t.End()
}

// Contains reports whether v is present.
func (t *Tree[T]) Contains(v T) bool {
	return !t.Find(v).Equal(t.End())
}

// leftmost follows child edges to the left from idx.
func (t *Tree[T]) leftmost(idx int32) int32 {
	for t.node(idx).left.kind == child {
		idx = t.node(idx).left.to
	}
	return idx
}

func (t *Tree[T]) rightmost(idx int32) int32 {
	for t.node(idx).right.kind == child {
		idx = t.node(idx).right.to
	}
	return idx
}

// Begin returns an iterator to the smallest value, or End if the tree is
// empty.
func (t *Tree[T]) Begin() Iterator[T] {
	if t.root == none {
		return t.End()
	}
	return t.iter(t.leftmost(t.root))
}

// End returns the iterator one past the largest value.
func (t *Tree[T]) End() Iterator[T] {
	return t.iter(back)
}

// Len returns the number of values.
func (t *Tree[T]) Len() int {
	return t.nodes.Live()
}

// Empty reports whether the tree holds no values.
func (t *Tree[T]) Empty() bool {
	return t.root == none
}

// Values returns every value in ascending order.
func (t *Tree[T]) Values() []T {
	out := make([]T, 0, t.Len())
	for it := t.Begin(); !it.Equal(t.End()); it = it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// Clone returns a deep copy with the same shape.
func (t *Tree[T]) Clone() *Tree[T] {
	return &Tree[T]{nodes: t.nodes.Clone(), root: t.root}
}
