package arbor

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders t as an ASCII tree diagram, formatting each value with
// stringer. It is meant for test failure messages and debugging, not for
// machine-readable output. Grounded on persistent/btree/btree_test.go's
// printTree/ppt helpers, which exercise treeprint over this same kind of
// node-and-children shape.
func (t *Tree[T]) Dump(stringer func(T) string) string {
	header := fmt.Sprintf("Tree(size=%d)\n", t.Size())
	p := tp.New()
	dumpNode(p, t.core.root, stringer)
	return header + p.String()
}

func dumpNode[T any](p tp.Tree, n *node[T], stringer func(T) string) {
	if n == nil {
		return
	}
	if n.childCount() == 0 {
		p.AddNode(stringer(n.value))
		return
	}
	branch := p.AddBranch(stringer(n.value))
	for _, child := range n.children {
		dumpNode(branch, child, stringer)
	}
}

// String renders t using fmt.Sprint on each value.
func (t *Tree[T]) String() string {
	return t.Dump(func(v T) string { return fmt.Sprint(v) })
}
