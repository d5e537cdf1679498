package arbor

// ConstHandle is a read-only reference to a position in a Tree. Handles
// remain valid across any mutation that does not erase the node they
// reference (insertion, chopping, adopting, and moving elsewhere in the
// same tree all leave existing handles pointing at the same node), matching
// the stability guarantee of the original design's node_handle.
//
// The zero ConstHandle is null and refers to no tree.
type ConstHandle[T any] struct {
	tree *unsafeTree[T]
	node *node[T]
}

// Handle is a mutable reference to a position in a Tree: everything
// ConstHandle offers, plus the ability to be passed to Tree's mutating
// operations. A Handle converts implicitly in spirit (explicitly in Go, via
// AsConst) to a ConstHandle, never the reverse.
type Handle[T any] struct {
	tree *unsafeTree[T]
	node *node[T]
}

// AsConst downgrades h to a read-only handle on the same node.
func (h Handle[T]) AsConst() ConstHandle[T] {
	return ConstHandle[T]{tree: h.tree, node: h.node}
}

// IsNull reports whether h refers to no node.
func (h Handle[T]) IsNull() bool { return h.node == nil }

// IsNull reports whether h refers to no node.
func (h ConstHandle[T]) IsNull() bool { return h.node == nil }

func (h Handle[T]) belongsTo(t *unsafeTree[T]) bool {
	return h.tree == t && t.inTree(h.node)
}

func (h ConstHandle[T]) belongsTo(t *unsafeTree[T]) bool {
	return h.tree == t && t.inTree(h.node)
}

// Value returns the value held at h's node.
func (h ConstHandle[T]) Value() T {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.Value", "handle is null")
	return h.node.value
}

// Value returns the value held at h's node.
func (h Handle[T]) Value() T {
	return h.AsConst().Value()
}

// SetValue overwrites the value held at h's node.
func (h Handle[T]) SetValue(value T) {
	assertThat(h.node != nil, NullHandleUsed, "Handle.SetValue", "handle is null")
	h.node.value = value
}

// ChildCount returns the number of children of h's node.
func (h ConstHandle[T]) ChildCount() int {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.ChildCount", "handle is null")
	return h.node.childCount()
}

// ChildCount returns the number of children of h's node.
func (h Handle[T]) ChildCount() int {
	return h.AsConst().ChildCount()
}

// DescendantCount returns the number of nodes strictly below h's node.
func (h ConstHandle[T]) DescendantCount() int {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.DescendantCount", "handle is null")
	return h.node.descendantCount()
}

// DescendantCount returns the number of nodes strictly below h's node.
func (h Handle[T]) DescendantCount() int {
	return h.AsConst().DescendantCount()
}

// SiblingIndex returns h's position among its parent's children. The root
// reports index 0.
func (h ConstHandle[T]) SiblingIndex() int {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.SiblingIndex", "handle is null")
	return h.node.siblingIndex
}

// SiblingIndex returns h's position among its parent's children. The root
// reports index 0.
func (h Handle[T]) SiblingIndex() int {
	return h.AsConst().SiblingIndex()
}

// IsLeftmostSibling reports whether h has no left sibling. Precondition: h
// has a parent (is not the root).
func (h ConstHandle[T]) IsLeftmostSibling() bool {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.IsLeftmostSibling", "handle is null")
	return h.node.isLeftmostSibling()
}

// IsLeftmostSibling reports whether h has no left sibling. Precondition: h
// has a parent (is not the root).
func (h Handle[T]) IsLeftmostSibling() bool {
	return h.AsConst().IsLeftmostSibling()
}

// IsRightmostSibling reports whether h has no right sibling. Precondition: h
// has a parent (is not the root).
func (h ConstHandle[T]) IsRightmostSibling() bool {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.IsRightmostSibling", "handle is null")
	return h.node.isRightmostSibling()
}

// IsRightmostSibling reports whether h has no right sibling. Precondition: h
// has a parent (is not the root).
func (h Handle[T]) IsRightmostSibling() bool {
	return h.AsConst().IsRightmostSibling()
}

// Parent returns a handle to h's parent, or a null handle if h is the root.
func (h ConstHandle[T]) Parent() ConstHandle[T] {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.Parent", "handle is null")
	if h.node.parent == nil {
		return ConstHandle[T]{}
	}
	return ConstHandle[T]{tree: h.tree, node: h.node.parent}
}

// Parent returns a handle to h's parent, or a null handle if h is the root.
func (h Handle[T]) Parent() Handle[T] {
	assertThat(h.node != nil, NullHandleUsed, "Handle.Parent", "handle is null")
	if h.node.parent == nil {
		return Handle[T]{}
	}
	return Handle[T]{tree: h.tree, node: h.node.parent}
}

// Child returns a handle to h's i'th child (zero-based).
func (h ConstHandle[T]) Child(i int) ConstHandle[T] {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.Child", "handle is null")
	assertThat(i >= 0 && i < len(h.node.children), IndexOutOfBounds, "ConstHandle.Child", "index %d out of bounds (have %d children)", i, len(h.node.children))
	return ConstHandle[T]{tree: h.tree, node: h.node.children[i]}
}

// Child returns a handle to h's i'th child (zero-based).
func (h Handle[T]) Child(i int) Handle[T] {
	assertThat(h.node != nil, NullHandleUsed, "Handle.Child", "handle is null")
	assertThat(i >= 0 && i < len(h.node.children), IndexOutOfBounds, "Handle.Child", "index %d out of bounds (have %d children)", i, len(h.node.children))
	return Handle[T]{tree: h.tree, node: h.node.children[i]}
}

// Children returns handles to every child of h, in order.
func (h ConstHandle[T]) Children() []ConstHandle[T] {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.Children", "handle is null")
	out := make([]ConstHandle[T], len(h.node.children))
	for i, c := range h.node.children {
		out[i] = ConstHandle[T]{tree: h.tree, node: c}
	}
	return out
}

// Children returns handles to every child of h, in order.
func (h Handle[T]) Children() []Handle[T] {
	assertThat(h.node != nil, NullHandleUsed, "Handle.Children", "handle is null")
	out := make([]Handle[T], len(h.node.children))
	for i, c := range h.node.children {
		out[i] = Handle[T]{tree: h.tree, node: c}
	}
	return out
}

// LeftSibling returns a handle to the sibling immediately to h's left.
// Precondition: !h.IsLeftmostSibling().
func (h ConstHandle[T]) LeftSibling() ConstHandle[T] {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.LeftSibling", "handle is null")
	return ConstHandle[T]{tree: h.tree, node: h.node.leftSibling()}
}

// RightSibling returns a handle to the sibling immediately to h's right.
// Precondition: !h.IsRightmostSibling().
func (h ConstHandle[T]) RightSibling() ConstHandle[T] {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.RightSibling", "handle is null")
	return ConstHandle[T]{tree: h.tree, node: h.node.rightSibling()}
}

// LeftSibling returns a handle to the sibling immediately to h's left.
// Precondition: !h.IsLeftmostSibling().
func (h Handle[T]) LeftSibling() Handle[T] {
	assertThat(h.node != nil, NullHandleUsed, "Handle.LeftSibling", "handle is null")
	return Handle[T]{tree: h.tree, node: h.node.leftSibling()}
}

// RightSibling returns a handle to the sibling immediately to h's right.
// Precondition: !h.IsRightmostSibling().
func (h Handle[T]) RightSibling() Handle[T] {
	assertThat(h.node != nil, NullHandleUsed, "Handle.RightSibling", "handle is null")
	return Handle[T]{tree: h.tree, node: h.node.rightSibling()}
}

// HasParent reports whether other is an ancestor of h.
func (h ConstHandle[T]) HasParent(other ConstHandle[T]) bool {
	assertThat(h.node != nil, NullHandleUsed, "ConstHandle.HasParent", "handle is null")
	if other.node == nil {
		return false
	}
	return h.node.hasParent(other.node)
}

// HasParent reports whether other is an ancestor of h.
func (h Handle[T]) HasParent(other Handle[T]) bool {
	return h.AsConst().HasParent(other.AsConst())
}

// IsParentOf reports whether h is an ancestor of other.
func (h ConstHandle[T]) IsParentOf(other ConstHandle[T]) bool {
	return other.HasParent(h)
}

// IsParentOf reports whether h is an ancestor of other.
func (h Handle[T]) IsParentOf(other Handle[T]) bool {
	return other.HasParent(h)
}

// Equal reports whether h and other refer to the same node of the same
// tree.
func (h ConstHandle[T]) Equal(other ConstHandle[T]) bool {
	return h.tree == other.tree && h.node == other.node
}

// Equal reports whether h and other refer to the same node of the same
// tree.
func (h Handle[T]) Equal(other Handle[T]) bool {
	return h.tree == other.tree && h.node == other.node
}
