package arbor

import "iter"

// Tree is the safe, handle-based public wrapper over the unsafe core. It
// validates every handle it is given, translates handles to node pointers
// and back, and reports failures as *Error values instead of corrupting
// structure or panicking (panics are reserved for the unsafe layer's debug
// assertions). Tree itself carries no durable state beyond the unsafeTree
// it delegates to, per spec.md §4.3.
type Tree[T comparable] struct {
	core *unsafeTree[T]
}

// NewTree returns an empty tree.
func NewTree[T comparable]() *Tree[T] {
	return &Tree[T]{core: newUnsafeTree[T]()}
}

// NewTreeFromInitializer builds a tree in bulk from init, emplacing the
// root first and then recursing into each child initializer in order.
func NewTreeFromInitializer[T comparable](init Initializer[T]) *Tree[T] {
	t := NewTree[T]()
	root := t.core.emplaceNode(nil, init.Value)
	fillFromInitializer(t.core, root, init.Children)
	return t
}

func fillFromInitializer[T comparable](core *unsafeTree[T], dest *node[T], children []Initializer[T]) {
	for _, ci := range children {
		child := core.emplaceNode(dest, ci.Value)
		fillFromInitializer(core, child, ci.Children)
	}
}

// NewTreeFromSubtree returns a new tree holding a deep copy of the subtree
// referenced by h, which may belong to any tree (including this package's
// own). A null handle yields an empty tree.
func NewTreeFromSubtree[T comparable](h ConstHandle[T]) *Tree[T] {
	if h.IsNull() {
		return NewTree[T]()
	}
	return &Tree[T]{core: copyUnsafeTree(h.node)}
}

// Clone returns a deep copy of t.
func (t *Tree[T]) Clone() *Tree[T] {
	return &Tree[T]{core: copyUnsafeTree(t.core.root)}
}

// Swap exchanges the entire contents of t and other. Handles into either
// tree remain valid but now refer to positions in the other Tree value.
func (t *Tree[T]) Swap(other *Tree[T]) {
	t.core, other.core = other.core, t.core
}

// Equal reports whether t and other have identical size and structure with
// pairwise equal values.
func (t *Tree[T]) Equal(other *Tree[T]) bool {
	return equalUnsafeTrees(t.core, other.core)
}

// Size returns the number of nodes in t.
func (t *Tree[T]) Size() int { return t.core.size() }

// Len is an alias for Size, for symmetry with other Go containers.
func (t *Tree[T]) Len() int { return t.core.size() }

// Empty reports whether t has no nodes.
func (t *Tree[T]) Empty() bool { return t.core.empty() }

// MaxSize returns the largest size t could theoretically reach.
func (t *Tree[T]) MaxSize() int { return t.core.maxSize() }

// Clear destroys every node in t, leaving it empty.
func (t *Tree[T]) Clear() { t.core.clear() }

func (t *Tree[T]) handle(n *node[T]) Handle[T] {
	if n == nil {
		return Handle[T]{}
	}
	return Handle[T]{tree: t.core, node: n}
}

// Root returns a handle to t's root, or a null handle if t is empty.
func (t *Tree[T]) Root() Handle[T] { return t.handle(t.core.root) }

// Leftmost returns a handle to t's leftmost descendant, or a null handle if
// t is empty.
func (t *Tree[T]) Leftmost() Handle[T] { return t.handle(t.core.leftmost) }

// Rightmost returns a handle to t's rightmost descendant, or a null handle
// if t is empty.
func (t *Tree[T]) Rightmost() Handle[T] { return t.handle(t.core.rightmost) }

// validate checks that h is non-null and belongs to t, returning the
// underlying node pointer on success.
func (t *Tree[T]) validate(h Handle[T], op string) (*node[T], error) {
	if h.IsNull() {
		return nil, newError(NullHandleUsed, op, "handle is null")
	}
	if !h.belongsTo(t.core) {
		return nil, newError(HandleOutOfTree, op, "handle does not belong to this tree")
	}
	return h.node, nil
}

func (t *Tree[T]) validateConst(h ConstHandle[T], op string) (*node[T], error) {
	if h.IsNull() {
		return nil, newError(NullHandleUsed, op, "handle is null")
	}
	if !h.belongsTo(t.core) {
		return nil, newError(HandleOutOfTree, op, "handle does not belong to this tree")
	}
	return h.node, nil
}

// EmplaceNode constructs a new node holding value and attaches it as a new
// last child of parent. A null parent handle on an empty tree creates the
// root; on a non-empty tree it creates a new root above the former one.
func (t *Tree[T]) EmplaceNode(parent Handle[T], value T) (Handle[T], error) {
	const op = "Tree.EmplaceNode"
	if parent.IsNull() {
		return t.handle(t.core.emplaceNode(nil, value)), nil
	}
	n, err := t.validate(parent, op)
	if err != nil {
		return Handle[T]{}, err
	}
	return t.handle(t.core.emplaceNode(n, value)), nil
}

// ChopSubtree detaches the subtree rooted at h and returns it as a new
// tree. If h is t's root, t becomes empty and the returned tree holds
// everything t held.
func (t *Tree[T]) ChopSubtree(h Handle[T]) (*Tree[T], error) {
	n, err := t.validate(h, "Tree.ChopSubtree")
	if err != nil {
		return nil, err
	}
	return &Tree[T]{core: t.core.chopSubtree(n)}, nil
}

// AdoptSubtree consumes other, attaching its root as a new last child of
// dest. other is left empty.
func (t *Tree[T]) AdoptSubtree(dest Handle[T], other *Tree[T]) (Handle[T], error) {
	const op = "Tree.AdoptSubtree"
	n, err := t.validate(dest, op)
	if err != nil {
		return Handle[T]{}, err
	}
	if other.Empty() {
		return Handle[T]{}, newError(PreconditionViolated, op, "other tree is empty")
	}
	return t.handle(t.core.adoptSubtree(other.core, n)), nil
}

// MoveSubtree detaches the subtree rooted at subtreeHandle and reattaches
// it as a new last child of destHandle, both within t. Fails with
// ErrCycleWouldForm if destHandle lies within the subtree being moved, and
// with ErrPreconditionViolated if subtreeHandle is t's root.
func (t *Tree[T]) MoveSubtree(subtreeHandle, destHandle Handle[T]) error {
	const op = "Tree.MoveSubtree"
	subtreeRoot, err := t.validate(subtreeHandle, op)
	if err != nil {
		return err
	}
	dest, err := t.validate(destHandle, op)
	if err != nil {
		return err
	}
	if subtreeRoot == t.core.root {
		return newError(PreconditionViolated, op, "cannot move the tree's own root")
	}
	if dest == subtreeRoot || dest.hasParent(subtreeRoot) {
		return newError(CycleWouldForm, op, "destination lies within the subtree being moved")
	}
	t.core.moveSubtree(subtreeRoot, dest)
	return nil
}

// EraseSubtree destroys the subtree rooted at h. If h is t's root, this
// empties t.
func (t *Tree[T]) EraseSubtree(h Handle[T]) error {
	n, err := t.validate(h, "Tree.EraseSubtree")
	if err != nil {
		return err
	}
	t.core.eraseSubtree(n)
	return nil
}

// MergeWithParent folds the value at h into its parent's value using
// policy, reparenting h's children in h's place, and removes h. Fails with
// ErrPreconditionViolated if h is t's root (it has no parent to merge
// into).
func (t *Tree[T]) MergeWithParent(h Handle[T], policy MergePolicy[T]) error {
	const op = "Tree.MergeWithParent"
	n, err := t.validate(h, op)
	if err != nil {
		return err
	}
	if n.parent == nil {
		return newError(PreconditionViolated, op, "root has no parent to merge into")
	}
	t.core.mergeWithParent(n, policy)
	return nil
}

// Nodes ranges over every node of t in unspecified order — useful for
// unordered enumeration, not traversal. See Values/Reverse for ordered
// depth-first traversal.
func (t *Tree[T]) Nodes() iter.Seq[Handle[T]] {
	return func(yield func(Handle[T]) bool) {
		for n := range t.core.unorderedNodes() {
			if !yield(t.handle(n)) {
				return
			}
		}
	}
}
