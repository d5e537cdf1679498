package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectForward(t *Tree[int], order Order) []int {
	var out []int
	for v := range t.Values(order) {
		out = append(out, v)
	}
	return out
}

func collectReverse(t *Tree[int], order Order) []int {
	var out []int
	for v := range t.Reverse(order) {
		out = append(out, v)
	}
	return out
}

func TestTraversalOrdersOverSampleTree(t *testing.T) {
	tr := sampleTree(t)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, collectForward(tr, PreOrder))
	assert.Equal(t, []int{3, 4, 2, 6, 7, 5, 1}, collectForward(tr, PostOrder))
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1}, collectReverse(tr, PreOrder))
	assert.Equal(t, []int{1, 5, 7, 6, 2, 4, 3}, collectReverse(tr, PostOrder))
}

func TestIteratorStepManually(t *testing.T) {
	tr := sampleTree(t)
	it := tr.Iterator(PreOrder)

	var got []int
	for !it.Done() {
		got = append(got, it.Value())
		require.NoError(t, it.Next())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)
	assert.True(t, it.Equal(tr.End(PreOrder)))
}

func TestIteratorNextPastEndFails(t *testing.T) {
	tr := sampleTree(t)
	it := tr.End(PreOrder)
	err := it.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIteratorOp)
}

func TestIteratorPrevPastBeginFails(t *testing.T) {
	tr := sampleTree(t)
	it := tr.Iterator(PreOrder)
	err := it.Prev()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIteratorOp)
}

func TestIteratorPrevFromEndLandsOnLastNode(t *testing.T) {
	tr := sampleTree(t)
	it := tr.End(PreOrder)
	require.NoError(t, it.Prev())
	assert.Equal(t, 7, it.Value())

	it2 := tr.End(PostOrder)
	require.NoError(t, it2.Prev())
	assert.Equal(t, 1, it2.Value())
}

func TestPreOrderBeginEqualsEndIffEmpty(t *testing.T) {
	empty := NewTree[int]()
	assert.True(t, empty.Iterator(PreOrder).Equal(empty.End(PreOrder)))

	tr := sampleTree(t)
	assert.False(t, tr.Iterator(PreOrder).Equal(tr.End(PreOrder)))
}

func TestIteratorsFromDifferentTreesNeverEqual(t *testing.T) {
	a := sampleTree(t)
	b := sampleTree(t)
	assert.False(t, a.Iterator(PreOrder).Equal(b.Iterator(PreOrder)))
	assert.False(t, a.End(PreOrder).Equal(b.End(PreOrder)))
}

func TestIteratorAsHandleRoundTrips(t *testing.T) {
	tr := sampleTree(t)
	it := tr.Iterator(PreOrder)
	h := it.AsHandle()
	assert.Equal(t, tr.Root().Value(), h.Value())
	assert.True(t, tr.Root().Equal(h))
}
