package arbor

import "iter"

// Order selects one of the two depth-first traversal schedules a tree
// supports.
type Order int

const (
	// PreOrder visits a node before its children, left to right.
	PreOrder Order = iota
	// PostOrder visits a node after its children, left to right.
	PostOrder
)

// Iterator is a bidirectional cursor over a Tree in the given depth-first
// Order. The zero Iterator is singular: stepping it with Next or Prev
// returns an error matching ErrInvalidIteratorOp, and dereferencing it
// panics (with an *Error of that kind when DebugAssertions is set).
// Iterators obtained from Tree.Iterator are
// always valid to step or dereference until the node they reference is
// removed from the tree.
type Iterator[T comparable] struct {
	core  *unsafeTree[T]
	order Order
	cur   *node[T] // nil means past-the-end
}

// Done reports whether it has run off the end of the traversal (or is
// singular).
func (it *Iterator[T]) Done() bool {
	return it.cur == nil
}

// Value returns the value at it's current position.
func (it *Iterator[T]) Value() T {
	assertThat(it.cur != nil, InvalidIteratorOperation, "Iterator.Value", "dereferencing a past-the-end or singular iterator")
	return it.cur.value
}

// AsHandle returns a handle to it's current position, or a null handle if
// it has run off the end.
func (it *Iterator[T]) AsHandle() Handle[T] {
	if it.cur == nil {
		return Handle[T]{}
	}
	return Handle[T]{tree: it.core, node: it.cur}
}

// Equal reports whether it and other refer to the same tree and the same
// position. Iterators from different trees are never equal, even if both
// are past-the-end.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.core == other.core && it.order == other.order && it.cur == other.cur
}

// Next advances it to the next position in its order. Fails with
// ErrInvalidIteratorOp if it is already past-the-end.
func (it *Iterator[T]) Next() error {
	if it.cur == nil {
		return newError(InvalidIteratorOperation, "Iterator.Next", "incrementing a past-the-end iterator")
	}
	it.cur = dfsNext(it.order, it.cur)
	return nil
}

// Prev moves it to the previous position in its order. Fails with
// ErrInvalidIteratorOp if it is already at the beginning.
func (it *Iterator[T]) Prev() error {
	if it.core == nil {
		return newError(InvalidIteratorOperation, "Iterator.Prev", "decrementing a singular iterator")
	}
	if it.cur == nil {
		switch it.order {
		case PreOrder:
			it.cur = it.core.rightmost
		case PostOrder:
			it.cur = it.core.root
		}
		if it.cur == nil {
			return newError(InvalidIteratorOperation, "Iterator.Prev", "decrementing the beginning of an empty tree")
		}
		return nil
	}
	prev, ok := dfsPrevious(it.order, it.cur)
	if !ok {
		return newError(InvalidIteratorOperation, "Iterator.Prev", "decrementing a begin iterator")
	}
	it.cur = prev
	return nil
}

// dfsNext computes the next node after n in order, or nil if n is the last
// node of that order. Grounded on the stepping contracts of
// cpptools/container/tree/traversal.hpp's dfs_proxy, adjusted to the
// normative (non-buggy) end-of-traversal behavior spec.md describes.
func dfsNext[T any](order Order, n *node[T]) *node[T] {
	switch order {
	case PreOrder:
		if n.childCount() > 0 {
			return n.children[0]
		}
		cur := n
		for cur.parent != nil {
			if !cur.isRightmostSibling() {
				return cur.rightSibling()
			}
			cur = cur.parent
		}
		return nil
	default: // PostOrder
		if n.parent == nil {
			return nil
		}
		if !n.isRightmostSibling() {
			return n.rightSibling().leftmostOrSelf()
		}
		return n.parent
	}
}

// dfsPrevious computes the node before n in order. ok is false iff n is
// already the first node of that order (no previous position exists).
func dfsPrevious[T any](order Order, n *node[T]) (prev *node[T], ok bool) {
	switch order {
	case PreOrder:
		if n.parent == nil {
			return nil, false
		}
		if !n.isLeftmostSibling() {
			return n.leftSibling().rightmostOrSelf(), true
		}
		return n.parent, true
	default: // PostOrder
		if n.childCount() > 0 {
			return n.children[n.childCount()-1], true
		}
		cur := n
		for cur.parent != nil {
			if !cur.isLeftmostSibling() {
				return cur.leftSibling(), true
			}
			cur = cur.parent
		}
		return nil, false
	}
}

func (t *Tree[T]) beginNode(order Order) *node[T] {
	switch order {
	case PreOrder:
		return t.core.root
	default:
		return t.core.leftmost
	}
}

// Iterator returns an iterator positioned at the beginning of t's
// traversal in the given order (its end if t is empty).
func (t *Tree[T]) Iterator(order Order) *Iterator[T] {
	return &Iterator[T]{core: t.core, order: order, cur: t.beginNode(order)}
}

// End returns an iterator positioned one past the end of t's traversal in
// the given order, suitable only for comparison and for Prev.
func (t *Tree[T]) End(order Order) *Iterator[T] {
	return &Iterator[T]{core: t.core, order: order, cur: nil}
}

// Values returns the sequence of values visited by a forward traversal of
// t in the given order.
func (t *Tree[T]) Values(order Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := t.beginNode(order); n != nil; n = dfsNext(order, n) {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Handles returns the sequence of handles visited by a forward traversal
// of t in the given order.
func (t *Tree[T]) Handles(order Order) iter.Seq[Handle[T]] {
	return func(yield func(Handle[T]) bool) {
		for n := t.beginNode(order); n != nil; n = dfsNext(order, n) {
			if !yield(Handle[T]{tree: t.core, node: n}) {
				return
			}
		}
	}
}

// Reverse returns the sequence of values visited by traversing t in the
// given order back to front — the standard reverse adapter over the
// forward traversal, per spec.md §4.4.
func (t *Tree[T]) Reverse(order Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		var start *node[T]
		switch order {
		case PreOrder:
			start = t.core.rightmost
		default:
			start = t.core.root
		}
		for n := start; n != nil; {
			if !yield(n.value) {
				return
			}
			prev, ok := dfsPrevious(order, n)
			if !ok {
				return
			}
			n = prev
		}
	}
}
