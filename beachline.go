package voronoi

import (
	"math"

	assert "github.com/arl/assertgo"
)

// NodeKey is a stable reference to a beachline tree node (and therefore to
// the arc it carries).
type NodeKey = Key[treeNode]

type color uint8

const (
	red color = iota
	black
)

// Arc is a parabolic segment on the beachline belonging to one face.
type Arc struct {
	face                        FaceKey
	leftHalfEdge, rightHalfEdge HalfEdgeKey
	event                       QueueHandle
}

type treeNode struct {
	color               color
	parent, left, right NodeKey
	arc                 Arc
}

// arcTree is a red-black tree (CLRS-style insertion and deletion fixups,
// nodes carrying parent pointers) whose in-order
// traversal is the left-to-right order of beachline arcs. Unlike a
// conventional search tree, arcs are not located by comparing a stored
// key: every node already carries its payload (the arc), and the tree
// exists purely to maintain a balanced, order-preserving sequence that
// supports insert-before/insert-after a given node, in-place content
// replacement, and deletion, all in O(log n) — the access pattern
// spec.md §4.4 and §9 require ("the beachline cannot degrade to a linear
// list").
//
// Deletion uses CLRS-style TRANSPLANT (pointer relinking), not value
// copying: when a node with two children is deleted, its in-order
// successor is relocated into the deleted node's structural position
// rather than having its *contents* copied there. This preserves the
// successor's own NodeKey identity — required here because a live circle
// event may be holding exactly that key (spec.md §9's "beachline arcs
// reference live queue slots" cuts both ways: the queue also reaches back
// into specific arc nodes).
type arcTree struct {
	pool *Pool[treeNode]
	root NodeKey
}

func newArcTree() *arcTree {
	return &arcTree{pool: NewPool[treeNode]()}
}

func (t *arcTree) HasRoot() bool {
	return t.root.Valid()
}

func (t *arcTree) get(k NodeKey) treeNode {
	return t.pool.MustGet(k)
}

func (t *arcTree) set(k NodeKey, n treeNode) {
	t.pool.MustSet(k, n)
}

func (t *arcTree) colorOf(k NodeKey) color {
	if !k.Valid() {
		return black
	}
	return t.get(k).color
}

func (t *arcTree) setColor(k NodeKey, c color) {
	if !k.Valid() {
		return
	}
	n := t.get(k)
	n.color = c
	t.set(k, n)
}

func (t *arcTree) parentOf(k NodeKey) NodeKey {
	if !k.Valid() {
		return NodeKey{}
	}
	return t.get(k).parent
}

func (t *arcTree) leftOf(k NodeKey) NodeKey {
	if !k.Valid() {
		return NodeKey{}
	}
	return t.get(k).left
}

func (t *arcTree) rightOf(k NodeKey) NodeKey {
	if !k.Valid() {
		return NodeKey{}
	}
	return t.get(k).right
}

func (t *arcTree) setParent(k, parent NodeKey) {
	if !k.Valid() {
		return
	}
	n := t.get(k)
	n.parent = parent
	t.set(k, n)
}

func (t *arcTree) setLeft(k, left NodeKey) {
	if !k.Valid() {
		return
	}
	n := t.get(k)
	n.left = left
	t.set(k, n)
}

func (t *arcTree) setRight(k, right NodeKey) {
	if !k.Valid() {
		return
	}
	n := t.get(k)
	n.right = right
	t.set(k, n)
}

// GetContents returns the arc carried by node.
func (t *arcTree) GetContents(node NodeKey) Arc {
	return t.get(node).arc
}

// SetContents overwrites node's arc in place, preserving its tree links.
func (t *arcTree) SetContents(node NodeKey, arc Arc) {
	n := t.get(node)
	n.arc = arc
	t.set(node, n)
}

// CreateRoot makes a new tree with a single root node carrying arc.
func (t *arcTree) CreateRoot(arc Arc) NodeKey {
	k := t.pool.Insert(treeNode{color: black, arc: arc})
	t.root = k
	return k
}

func (t *arcTree) minimum(k NodeKey) NodeKey {
	for t.leftOf(k).Valid() {
		k = t.leftOf(k)
	}
	return k
}

func (t *arcTree) maximum(k NodeKey) NodeKey {
	for t.rightOf(k).Valid() {
		k = t.rightOf(k)
	}
	return k
}

// GetLeftmostNode returns the leftmost (smallest in-order) node.
func (t *arcTree) GetLeftmostNode() (NodeKey, bool) {
	if !t.HasRoot() {
		return NodeKey{}, false
	}
	return t.minimum(t.root), true
}

// GetPrev returns the in-order predecessor of node, if any.
func (t *arcTree) GetPrev(node NodeKey) (NodeKey, bool) {
	if t.leftOf(node).Valid() {
		return t.maximum(t.leftOf(node)), true
	}
	y := node
	p := t.parentOf(y)
	for p.Valid() && y == t.leftOf(p) {
		y = p
		p = t.parentOf(y)
	}
	return p, p.Valid()
}

// GetNext returns the in-order successor of node, if any.
func (t *arcTree) GetNext(node NodeKey) (NodeKey, bool) {
	if t.rightOf(node).Valid() {
		return t.minimum(t.rightOf(node)), true
	}
	y := node
	p := t.parentOf(y)
	for p.Valid() && y == t.rightOf(p) {
		y = p
		p = t.parentOf(y)
	}
	return p, p.Valid()
}

func (t *arcTree) leftRotate(x NodeKey) {
	y := t.rightOf(x)
	t.setRight(x, t.leftOf(y))
	if t.leftOf(y).Valid() {
		t.setParent(t.leftOf(y), x)
	}
	t.setParent(y, t.parentOf(x))
	switch p := t.parentOf(x); {
	case !p.Valid():
		t.root = y
	case x == t.leftOf(p):
		t.setLeft(p, y)
	default:
		t.setRight(p, y)
	}
	t.setLeft(y, x)
	t.setParent(x, y)
}

func (t *arcTree) rightRotate(x NodeKey) {
	y := t.leftOf(x)
	t.setLeft(x, t.rightOf(y))
	if t.rightOf(y).Valid() {
		t.setParent(t.rightOf(y), x)
	}
	t.setParent(y, t.parentOf(x))
	switch p := t.parentOf(x); {
	case !p.Valid():
		t.root = y
	case x == t.rightOf(p):
		t.setRight(p, y)
	default:
		t.setLeft(p, y)
	}
	t.setRight(y, x)
	t.setParent(x, y)
}

func (t *arcTree) insertFixup(z NodeKey) {
	for t.colorOf(t.parentOf(z)) == red {
		parent := t.parentOf(z)
		grandparent := t.parentOf(parent)
		if parent == t.leftOf(grandparent) {
			uncle := t.rightOf(grandparent)
			if t.colorOf(uncle) == red {
				t.setColor(parent, black)
				t.setColor(uncle, black)
				t.setColor(grandparent, red)
				z = grandparent
				continue
			}
			if z == t.rightOf(parent) {
				z = parent
				t.leftRotate(z)
				parent = t.parentOf(z)
				grandparent = t.parentOf(parent)
			}
			t.setColor(parent, black)
			t.setColor(grandparent, red)
			t.rightRotate(grandparent)
		} else {
			uncle := t.leftOf(grandparent)
			if t.colorOf(uncle) == red {
				t.setColor(parent, black)
				t.setColor(uncle, black)
				t.setColor(grandparent, red)
				z = grandparent
				continue
			}
			if z == t.leftOf(parent) {
				z = parent
				t.rightRotate(z)
				parent = t.parentOf(z)
				grandparent = t.parentOf(parent)
			}
			t.setColor(parent, black)
			t.setColor(grandparent, red)
			t.leftRotate(grandparent)
		}
	}
	t.setColor(t.root, black)
}

func (t *arcTree) attachLeft(parent NodeKey, arc Arc) NodeKey {
	z := t.pool.Insert(treeNode{color: red, parent: parent, arc: arc})
	t.setLeft(parent, z)
	t.insertFixup(z)
	return z
}

func (t *arcTree) attachRight(parent NodeKey, arc Arc) NodeKey {
	z := t.pool.Insert(treeNode{color: red, parent: parent, arc: arc})
	t.setRight(parent, z)
	t.insertFixup(z)
	return z
}

// InsertBefore inserts a new node carrying arc immediately before node in
// in-order position, and returns its key.
func (t *arcTree) InsertBefore(node NodeKey, arc Arc) NodeKey {
	if !t.leftOf(node).Valid() {
		return t.attachLeft(node, arc)
	}
	pred := t.maximum(t.leftOf(node))
	return t.attachRight(pred, arc)
}

// InsertAfter inserts a new node carrying arc immediately after node in
// in-order position, and returns its key.
func (t *arcTree) InsertAfter(node NodeKey, arc Arc) NodeKey {
	if !t.rightOf(node).Valid() {
		return t.attachRight(node, arc)
	}
	succ := t.minimum(t.rightOf(node))
	return t.attachLeft(succ, arc)
}

func (t *arcTree) transplant(u, v NodeKey) {
	p := t.parentOf(u)
	switch {
	case !p.Valid():
		t.root = v
	case u == t.leftOf(p):
		t.setLeft(p, v)
	default:
		t.setRight(p, v)
	}
	if v.Valid() {
		t.setParent(v, p)
	}
}

// DeleteNode removes node from the tree.
func (t *arcTree) DeleteNode(node NodeKey) {
	y := node
	yOriginalColor := t.colorOf(y)
	var x, xParent NodeKey

	switch {
	case !t.leftOf(node).Valid():
		x = t.rightOf(node)
		xParent = t.parentOf(node)
		t.transplant(node, x)
	case !t.rightOf(node).Valid():
		x = t.leftOf(node)
		xParent = t.parentOf(node)
		t.transplant(node, x)
	default:
		y = t.minimum(t.rightOf(node))
		yOriginalColor = t.colorOf(y)
		x = t.rightOf(y)
		if t.parentOf(y) == node {
			xParent = y
		} else {
			xParent = t.parentOf(y)
			t.transplant(y, t.rightOf(y))
			t.setRight(y, t.rightOf(node))
			t.setParent(t.rightOf(y), y)
		}
		t.transplant(node, y)
		t.setLeft(y, t.leftOf(node))
		t.setParent(t.leftOf(y), y)
		t.setColor(y, t.colorOf(node))
	}

	t.pool.Remove(node)

	if yOriginalColor == black {
		t.deleteFixup(x, xParent)
	}
}

func (t *arcTree) deleteFixup(x, xParent NodeKey) {
	if x.Valid() {
		xParent = t.parentOf(x)
	}
	for x != t.root && t.colorOf(x) == black {
		if x == t.leftOf(xParent) {
			w := t.rightOf(xParent)
			if t.colorOf(w) == red {
				t.setColor(w, black)
				t.setColor(xParent, red)
				t.leftRotate(xParent)
				w = t.rightOf(xParent)
			}
			if t.colorOf(t.leftOf(w)) == black && t.colorOf(t.rightOf(w)) == black {
				t.setColor(w, red)
				x = xParent
				xParent = t.parentOf(x)
			} else {
				if t.colorOf(t.rightOf(w)) == black {
					t.setColor(t.leftOf(w), black)
					t.setColor(w, red)
					t.rightRotate(w)
					w = t.rightOf(xParent)
				}
				t.setColor(w, t.colorOf(xParent))
				t.setColor(xParent, black)
				t.setColor(t.rightOf(w), black)
				t.leftRotate(xParent)
				x = t.root
				xParent = NodeKey{}
			}
		} else {
			w := t.leftOf(xParent)
			if t.colorOf(w) == red {
				t.setColor(w, black)
				t.setColor(xParent, red)
				t.rightRotate(xParent)
				w = t.leftOf(xParent)
			}
			if t.colorOf(t.rightOf(w)) == black && t.colorOf(t.leftOf(w)) == black {
				t.setColor(w, red)
				x = xParent
				xParent = t.parentOf(x)
			} else {
				if t.colorOf(t.leftOf(w)) == black {
					t.setColor(t.rightOf(w), black)
					t.setColor(w, red)
					t.leftRotate(w)
					w = t.leftOf(xParent)
				}
				t.setColor(w, t.colorOf(xParent))
				t.setColor(xParent, black)
				t.setColor(t.leftOf(w), black)
				t.rightRotate(xParent)
				x = t.root
				xParent = NodeKey{}
			}
		}
	}
	t.setColor(x, black)
}

// Beachline maps arcs to faces and to their left/right bounding
// half-edges, and supports locating the arc above a new site, breaking an
// arc in two, and completing the open edges along the sweep front at the
// end of the sweep.
type Beachline struct {
	tree *arcTree
}

// NewBeachline returns an empty beachline.
func NewBeachline() *Beachline {
	return &Beachline{tree: newArcTree()}
}

// HasRoot reports whether the beachline has been initialized with a first
// arc.
func (b *Beachline) HasRoot() bool {
	return b.tree.HasRoot()
}

// CreateRoot creates the beachline's first arc, for face.
func (b *Beachline) CreateRoot(face FaceKey) NodeKey {
	return b.tree.CreateRoot(Arc{face: face})
}

// GetPrev, GetNext, GetLeftmostNode and DeleteNode expose the underlying
// tree's order-maintenance operations directly: the sweep builder needs
// them to walk and mutate the beachline around the arc a site or circle
// event names.
func (b *Beachline) GetPrev(node NodeKey) (NodeKey, bool) { return b.tree.GetPrev(node) }
func (b *Beachline) GetNext(node NodeKey) (NodeKey, bool) { return b.tree.GetNext(node) }
func (b *Beachline) GetLeftmostNode() (NodeKey, bool)     { return b.tree.GetLeftmostNode() }
func (b *Beachline) DeleteNode(node NodeKey)              { b.tree.DeleteNode(node) }

// GetArcFace returns the face arc node belongs to.
func (b *Beachline) GetArcFace(node NodeKey) FaceKey {
	return b.tree.GetContents(node).face
}

// GetLeftHalfEdge returns node's left bounding half-edge.
func (b *Beachline) GetLeftHalfEdge(node NodeKey) HalfEdgeKey {
	return b.tree.GetContents(node).leftHalfEdge
}

// SetLeftHalfEdge sets node's left bounding half-edge.
func (b *Beachline) SetLeftHalfEdge(node NodeKey, he HalfEdgeKey) {
	arc := b.tree.GetContents(node)
	arc.leftHalfEdge = he
	b.tree.SetContents(node, arc)
}

// GetRightHalfEdge returns node's right bounding half-edge.
func (b *Beachline) GetRightHalfEdge(node NodeKey) HalfEdgeKey {
	return b.tree.GetContents(node).rightHalfEdge
}

// SetRightHalfEdge sets node's right bounding half-edge.
func (b *Beachline) SetRightHalfEdge(node NodeKey, he HalfEdgeKey) {
	arc := b.tree.GetContents(node)
	arc.rightHalfEdge = he
	b.tree.SetContents(node, arc)
}

// GetArcEvent returns the queue handle of the circle event currently
// scheduled against node's arc, if any.
func (b *Beachline) GetArcEvent(node NodeKey) QueueHandle {
	return b.tree.GetContents(node).event
}

// SetArcEvent records the queue handle of the circle event scheduled
// against node's arc.
func (b *Beachline) SetArcEvent(node NodeKey, h QueueHandle) {
	arc := b.tree.GetContents(node)
	arc.event = h
	b.tree.SetContents(node, arc)
}

// BreakArc splits the arc at node (belonging to face Fa) by the arrival of
// a new site for newFace: node is overwritten in place to hold the arc for
// newFace, and two new arcs for Fa are inserted immediately before and
// after it, inheriting the old arc's left and right half-edges
// respectively.
func (b *Beachline) BreakArc(node NodeKey, newFace FaceKey) (left, middle, right NodeKey) {
	leftHalfEdge := b.GetLeftHalfEdge(node)
	rightHalfEdge := b.GetRightHalfEdge(node)
	oldFace := b.GetArcFace(node)

	b.tree.SetContents(node, Arc{face: newFace})

	left = b.tree.InsertBefore(node, Arc{face: oldFace})
	b.SetLeftHalfEdge(left, leftHalfEdge)

	right = b.tree.InsertAfter(node, Arc{face: oldFace})
	b.SetRightHalfEdge(right, rightHalfEdge)

	return left, node, right
}

// computeBreakpoint returns the x-coordinate where the parabolas with foci
// p1 and p2, sharing directrix y, meet (spec.md §4.4).
func computeBreakpoint(p1, p2 Point, y float64) float64 {
	d1 := 1.0 / (2.0 * (p1.Y - y))
	d2 := 1.0 / (2.0 * (p2.Y - y))
	a := d1 - d2
	b := 2.0 * (p2.X*d2 - p1.X*d1)
	c := (p1.Y*p1.Y+p1.X*p1.X-y*y)*d1 - (p2.Y*p2.Y+p2.X*p2.X-y*y)*d2

	switch {
	case a == 0:
		return -c / b
	case approxEqual(p1.Y, y):
		return p1.X
	case approxEqual(p2.Y, y):
		return p2.X
	default:
		delta := b*b - 4*a*c
		return (-b - math.Sqrt(delta)) / (2 * a)
	}
}

// LocateArcAbove descends the beachline to find the arc directly above
// point, with the sweep line currently at y = point.Y. Returns
// ErrDuplicateSite if point coincides exactly with the focus of a
// degenerate arc (a vertical half-line, whose focus lies on the sweep line).
func (b *Beachline) LocateArcAbove(point Point, y float64, d *Diagram) (NodeKey, error) {
	assert.True(b.HasRoot(), "beachline: LocateArcAbove called on an empty beachline")
	current := b.tree.root

	for {
		face := b.GetArcFace(current)
		focus := d.FacePoint(face)

		if approxEqual(focus.Y, y) {
			switch {
			case point.X < focus.X:
				current = b.tree.leftOf(current)
			case point.X > focus.X:
				current = b.tree.rightOf(current)
			default:
				return NodeKey{}, &SiteError{Err: ErrDuplicateSite, Points: []Point{point, focus}}
			}
			continue
		}

		breakpointLeft := math.Inf(-1)
		if prev, ok := b.GetPrev(current); ok {
			breakpointLeft = computeBreakpoint(d.FacePoint(b.GetArcFace(prev)), focus, y)
		}
		breakpointRight := math.Inf(1)
		if next, ok := b.GetNext(current); ok {
			breakpointRight = computeBreakpoint(focus, d.FacePoint(b.GetArcFace(next)), y)
		}

		switch {
		case point.X < breakpointLeft:
			current = b.tree.leftOf(current)
		case point.X > breakpointRight:
			current = b.tree.rightOf(current)
		default:
			return current, nil
		}
	}
}

// openFrontRecord tracks one box-boundary hit made while completing the
// open front, so the corner-stitching pass below can pair up the edge that
// arrives at a face with the edge that departs from it.
type openFrontRecord struct {
	halfEdge HalfEdgeKey
	side     Side
}

// CompleteEdges closes every still-open pair of adjacent arcs along the
// sweep front against box, then stitches in corner vertices so every
// face's outer cycle closes (spec.md §4.4 "Completing the open front").
func (b *Beachline) CompleteEdges(box Box, d *Diagram) {
	if !b.HasRoot() {
		return
	}

	var departing, arriving []openFrontRecord

	left, _ := b.GetLeftmostNode()
	right, hasRight := b.GetNext(left)
	for hasRight {
		leftFace := b.GetArcFace(left)
		rightFace := b.GetArcFace(right)
		leftPoint := d.FacePoint(leftFace)
		rightPoint := d.FacePoint(rightFace)

		direction := Orthogonal(leftPoint.Sub(rightPoint))
		origin := leftPoint.Add(rightPoint).Scale(0.5)
		hit, side := box.IntersectRay(origin, direction)

		vertex := d.AddVertex(hit)

		arrivingEdge := b.GetRightHalfEdge(left)
		d.SetHalfEdgeOrigin(arrivingEdge, vertex)
		departingEdge := b.GetLeftHalfEdge(right)
		d.SetHalfEdgeDestination(departingEdge, vertex)

		departing = append(departing, openFrontRecord{departingEdge, side})
		arriving = append(arriving, openFrontRecord{arrivingEdge, side})

		left = right
		right, hasRight = b.GetNext(left)
	}

	for _, dep := range departing {
		current := dep.halfEdge
		for {
			prev, ok := d.HalfEdgePrev(current)
			if !ok {
				break
			}
			current = prev
		}
		var arr openFrontRecord
		for _, a := range arriving {
			if a.halfEdge == current {
				arr = a
				break
			}
		}
		linkVertices(box, d, dep.halfEdge, dep.side, arr.halfEdge, arr.side)
	}
}

// linkVertices walks box's boundary anti-clockwise from startSide to
// endSide, inserting one new half-edge per corner crossed plus a final
// half-edge into endEdge, as spec.md §4.4/§4.7 describe.
func linkVertices(box Box, d *Diagram, startEdge HalfEdgeKey, startSide Side, endEdge HalfEdgeKey, endSide Side) {
	edge := startEdge
	side := startSide
	face := d.HalfEdgeIncidentFace(edge)

	for side != endSide {
		newEdge := d.AddHalfEdge(face)
		d.Link(edge, newEdge)
		if origin, ok := d.HalfEdgeDestination(edge).Key(); ok {
			d.SetHalfEdgeOrigin(newEdge, origin)
		}
		corner := d.AddVertex(box.Corner(side, NextSide(side)))
		d.SetHalfEdgeDestination(newEdge, corner)
		side = NextSide(side)
		edge = newEdge
	}

	newEdge := d.AddHalfEdge(face)
	d.Link(edge, newEdge)
	d.Link(newEdge, endEdge)
	if origin, ok := d.HalfEdgeDestination(edge).Key(); ok {
		d.SetHalfEdgeOrigin(newEdge, origin)
	}
	if dest, ok := d.HalfEdgeOrigin(endEdge).Key(); ok {
		d.SetHalfEdgeDestination(newEdge, dest)
	}
}
