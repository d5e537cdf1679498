package arbor

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInitializer() Initializer[int] {
	return Initializer[int]{
		Value: 1,
		Children: []Initializer[int]{
			{Value: 2, Children: []Initializer[int]{{Value: 3}, {Value: 4}}},
			{Value: 5, Children: []Initializer[int]{{Value: 6}, {Value: 7}}},
		},
	}
}

func sampleTree(t *testing.T) *Tree[int] {
	t.Helper()
	return NewTreeFromInitializer(sampleInitializer())
}

func findValue(t *Tree[int], value int) Handle[int] {
	for h := range t.Nodes() {
		if h.Value() == value {
			return h
		}
	}
	return Handle[int]{}
}

func TestNewTreeIsEmpty(t *testing.T) {
	tr := NewTree[int]()
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Size())
	assert.True(t, tr.Root().IsNull())
}

func TestNewTreeFromInitializerBuildsSampleShape(t *testing.T) {
	tr := sampleTree(t)
	assert.Equal(t, 7, tr.Size())
	assert.Equal(t, 1, tr.Root().Value())
	assert.Equal(t, 3, tr.Leftmost().Value())
	assert.Equal(t, 7, tr.Rightmost().Value())

	var got []int
	for v := range tr.Values(PreOrder) {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)
}

func TestEmplaceNodeOnEmptyTreeCreatesRoot(t *testing.T) {
	tr := NewTree[int]()
	h, err := tr.EmplaceNode(Handle[int]{}, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, h.Value())
	assert.True(t, tr.Root().Equal(h))
}

func TestEmplaceNodeOnNonEmptyTreeReplacesRoot(t *testing.T) {
	tr := sampleTree(t)
	newRoot, err := tr.EmplaceNode(Handle[int]{}, 0)
	require.NoError(t, err)
	assert.True(t, tr.Root().Equal(newRoot))
	require.Equal(t, 1, newRoot.ChildCount())
	assert.Equal(t, 1, newRoot.Child(0).Value())
}

func TestEmplaceNodeRejectsHandleFromAnotherTree(t *testing.T) {
	a := sampleTree(t)
	b := sampleTree(t)
	_, err := a.EmplaceNode(b.Root(), 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHandleOutOfTree)
}

func TestEraseSubtreeLeaf(t *testing.T) {
	tr := sampleTree(t)
	h4 := findValue(tr, 4)
	require.NoError(t, tr.EraseSubtree(h4))
	assert.Equal(t, 6, tr.Size())

	var got []int
	for v := range tr.Values(PreOrder) {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, got)
}

func TestEraseSubtreeInner(t *testing.T) {
	tr := sampleTree(t)
	h2 := findValue(tr, 2)
	require.NoError(t, tr.EraseSubtree(h2))
	assert.Equal(t, 4, tr.Size())
	assert.Equal(t, 1, tr.Root().ChildCount())

	var got []int
	for v := range tr.Values(PreOrder) {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 5, 6, 7}, got)
}

func TestChopSubtreeThenAdoptSubtree(t *testing.T) {
	tr := sampleTree(t)
	h5 := findValue(tr, 5)
	h3 := findValue(tr, 3)

	chopped, err := tr.ChopSubtree(h5)
	require.NoError(t, err)
	assert.Equal(t, 3, chopped.Size())
	assert.Equal(t, 4, tr.Size())

	newHandle, err := tr.AdoptSubtree(h3, chopped)
	require.NoError(t, err)
	assert.Equal(t, 5, newHandle.Value())
	assert.Equal(t, 7, tr.Size())
	assert.True(t, chopped.Empty())

	var got []int
	for v := range tr.Values(PreOrder) {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 4}, got)
}

func TestMoveSubtreeRejectsCycle(t *testing.T) {
	tr := sampleTree(t)
	h2 := findValue(tr, 2)
	h3 := findValue(tr, 3)
	err := tr.MoveSubtree(h2, h3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycleWouldForm)
}

func TestMoveSubtreeRejectsMovingRoot(t *testing.T) {
	tr := sampleTree(t)
	root := tr.Root()
	h3 := findValue(tr, 3)
	err := tr.MoveSubtree(root, h3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPreconditionViolated)
}

func TestMergeWithParentKeepOriginal(t *testing.T) {
	tr := sampleTree(t)
	h2 := findValue(tr, 2)
	require.NoError(t, tr.MergeWithParent(h2, KeepOriginal[int]))
	assert.Equal(t, 6, tr.Size())
	assert.Equal(t, 1, tr.Root().Value())
	require.Equal(t, 3, tr.Root().ChildCount())
	assert.Equal(t, 3, tr.Root().Child(0).Value())
	assert.Equal(t, 4, tr.Root().Child(1).Value())
	assert.Equal(t, 5, tr.Root().Child(2).Value())
}

func TestMergeWithParentCopyReplace(t *testing.T) {
	tr := sampleTree(t)
	h2 := findValue(tr, 2)
	require.NoError(t, tr.MergeWithParent(h2, CopyReplace[int]))
	assert.Equal(t, 6, tr.Size())
	assert.Equal(t, 2, tr.Root().Value())
}

func TestMergeWithParentRejectsRoot(t *testing.T) {
	tr := sampleTree(t)
	err := tr.MergeWithParent(tr.Root(), KeepOriginal[int])
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPreconditionViolated)
}

func TestCloneIsDeepAndEqual(t *testing.T) {
	tr := sampleTree(t)
	clone := tr.Clone()
	assert.True(t, tr.Equal(clone))

	h4 := findValue(clone, 4)
	clone.EraseSubtree(h4)
	assert.False(t, tr.Equal(clone))
	assert.Equal(t, 7, tr.Size())
}

func TestNewTreeFromSubtreeCopiesSubtree(t *testing.T) {
	tr := sampleTree(t)
	h2 := findValue(tr, 2)
	cp := NewTreeFromSubtree[int](h2.AsConst())
	assert.Equal(t, 3, cp.Size())
	assert.Equal(t, 2, cp.Root().Value())
}

func TestSwapExchangesContents(t *testing.T) {
	a := sampleTree(t)
	b := NewTree[int]()
	b.EmplaceNode(Handle[int]{}, 100)

	a.Swap(b)
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, 100, a.Root().Value())
	assert.Equal(t, 7, b.Size())
}

func TestClearEmptiesTree(t *testing.T) {
	tr := sampleTree(t)
	tr.Clear()
	assert.True(t, tr.Empty())
	assert.True(t, tr.Root().IsNull())
}

func TestCloneDivergesFromOriginalAfterMutation(t *testing.T) {
	tr := sampleTree(t)
	clone := tr.Clone()
	h4 := findValue(clone, 4)
	require.NoError(t, clone.EraseSubtree(h4))

	diff := cmp.Diff(tr.Dump(strconv.Itoa), clone.Dump(strconv.Itoa))
	assert.NotEmpty(t, diff, "expected a diff between the original dump and the mutated clone's dump")
}

func TestNullHandleOperationsFail(t *testing.T) {
	tr := sampleTree(t)
	_, err := tr.ChopSubtree(Handle[int]{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNullHandle)
}
