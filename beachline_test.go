package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBreakpointSymmetric(t *testing.T) {
	x := computeBreakpoint(Point{-1, 0}, Point{1, 0}, -5)
	assert.InDelta(t, 0, x, 1e-9)
}

func TestBeachlineSingleArcLocatesAnywhere(t *testing.T) {
	d := NewDiagram()
	face := d.AddFace(Point{0, 0})
	b := NewBeachline()
	b.CreateRoot(face)

	node, err := b.LocateArcAbove(Point{5, -1}, -1, d)
	require.NoError(t, err)
	assert.Equal(t, face, b.GetArcFace(node))
}

func TestBeachlineLocateArcAboveDuplicateSite(t *testing.T) {
	d := NewDiagram()
	face := d.AddFace(Point{0, 0})
	b := NewBeachline()
	b.CreateRoot(face)

	_, err := b.LocateArcAbove(Point{0, 0}, 0, d)
	assert.ErrorIs(t, err, ErrDuplicateSite)
}

func TestBeachlineBreakArcInsertsThreeArcsInOrder(t *testing.T) {
	d := NewDiagram()
	faceA := d.AddFace(Point{-5, 0})
	faceB := d.AddFace(Point{5, 0})
	b := NewBeachline()
	root := b.CreateRoot(faceA)

	left, middle, right := b.BreakArc(root, faceB)
	assert.Equal(t, root, middle)

	got, ok := b.GetLeftmostNode()
	require.True(t, ok)
	assert.Equal(t, left, got)
	assert.Equal(t, faceA, b.GetArcFace(left))

	next, ok := b.GetNext(left)
	require.True(t, ok)
	assert.Equal(t, middle, next)
	assert.Equal(t, faceB, b.GetArcFace(middle))

	next, ok = b.GetNext(middle)
	require.True(t, ok)
	assert.Equal(t, right, next)
	assert.Equal(t, faceA, b.GetArcFace(right))
}

func TestBeachlineHalfEdgeAccessors(t *testing.T) {
	d := NewDiagram()
	face := d.AddFace(Point{0, 0})
	other := d.AddFace(Point{1, 1})
	b := NewBeachline()
	root := b.CreateRoot(face)

	he := d.AddHalfEdge(other)
	b.SetLeftHalfEdge(root, he)
	assert.Equal(t, he, b.GetLeftHalfEdge(root))

	he2 := d.AddHalfEdge(other)
	b.SetRightHalfEdge(root, he2)
	assert.Equal(t, he2, b.GetRightHalfEdge(root))
}

func TestBeachlineArcEventRoundtrip(t *testing.T) {
	d := NewDiagram()
	face := d.AddFace(Point{0, 0})
	b := NewBeachline()
	root := b.CreateRoot(face)

	q := NewEventQueue()
	h := q.Push(newCircleEvent(-1, Point{0, -1}, root))
	b.SetArcEvent(root, h)

	assert.Equal(t, h, b.GetArcEvent(root))
}

func TestArcTreeInOrderSurvivesManyInsertions(t *testing.T) {
	d := NewDiagram()
	b := NewBeachline()
	face0 := d.AddFace(Point{0, 0})
	root := b.CreateRoot(face0)

	nodes := []NodeKey{root}
	for i := 1; i < 50; i++ {
		f := d.AddFace(Point{float64(i), 0})
		// Alternate inserting before/after the root to exercise both
		// rotation directions of the tree.
		if i%2 == 0 {
			nodes = append(nodes, b.tree.InsertAfter(root, Arc{face: f}))
		} else {
			nodes = append(nodes, b.tree.InsertBefore(root, Arc{face: f}))
		}
	}

	first, ok := b.GetLeftmostNode()
	require.True(t, ok)
	count := 1
	for cur, hasNext := first, true; hasNext; {
		var next NodeKey
		next, hasNext = b.GetNext(cur)
		if hasNext {
			count++
			cur = next
		}
	}
	assert.Equal(t, len(nodes), count)
}

func TestArcTreeDeleteNodePreservesOrder(t *testing.T) {
	d := NewDiagram()
	b := NewBeachline()
	faceA := d.AddFace(Point{0, 0})
	root := b.CreateRoot(faceA)

	faceB := d.AddFace(Point{1, 0})
	mid := b.tree.InsertAfter(root, Arc{face: faceB})
	faceC := d.AddFace(Point{2, 0})
	b.tree.InsertAfter(mid, Arc{face: faceC})

	b.DeleteNode(mid)

	first, ok := b.GetLeftmostNode()
	require.True(t, ok)
	assert.Equal(t, faceA, b.GetArcFace(first))

	next, ok := b.GetNext(first)
	require.True(t, ok)
	assert.Equal(t, faceC, b.GetArcFace(next))

	_, hasMore := b.GetNext(next)
	assert.False(t, hasMore)
}
