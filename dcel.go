package voronoi

// FaceKey, VertexKey and HalfEdgeKey are stable references into a Diagram's
// pools. The zero value of each is the "unset" reference.
type (
	FaceKey     = Key[faceData]
	VertexKey   = Key[vertexData]
	HalfEdgeKey = Key[halfEdgeData]
)

type faceData struct {
	point          Point
	outerComponent HalfEdgeKey
}

type vertexData struct {
	point Point
}

type halfEdgeData struct {
	origin, destination HalfEdgeVertex
	twin                HalfEdgeKey
	incidentFace        FaceKey
	prev, next          HalfEdgeKey
}

// HalfEdgeVertex is an optional vertex reference: half-edges are created
// well before their endpoints are known, and "unassigned endpoint" needs to
// be a first-class value rather than a sentinel key.
type HalfEdgeVertex struct {
	key VertexKey
	set bool
}

// Set reports whether the endpoint has been assigned.
func (v HalfEdgeVertex) Set() bool { return v.set }

// Key returns the vertex key and whether it is set.
func (v HalfEdgeVertex) Key() (VertexKey, bool) { return v.key, v.set }

func setVertex(k VertexKey) HalfEdgeVertex { return HalfEdgeVertex{key: k, set: true} }

// Diagram is the doubly connected edge list produced by Build: faces,
// vertices and half-edges, incrementally stitched during the sweep and
// closed against a bounding box by the two post-passes described in
// spec.md §4.6/§4.7.
type Diagram struct {
	faces     *Pool[faceData]
	vertices  *Pool[vertexData]
	halfEdges *Pool[halfEdgeData]
}

// NewDiagram returns an empty diagram.
func NewDiagram() *Diagram {
	return &Diagram{
		faces:     NewPool[faceData](),
		vertices:  NewPool[vertexData](),
		halfEdges: NewPool[halfEdgeData](),
	}
}

// AddFace creates a face with the given site point.
func (d *Diagram) AddFace(point Point) FaceKey {
	return d.faces.Insert(faceData{point: point})
}

// Faces returns the key of every face in the diagram, in creation order.
func (d *Diagram) Faces() []FaceKey {
	return d.faces.Keys()
}

// NumFaces returns the number of faces in the diagram.
func (d *Diagram) NumFaces() int {
	return d.faces.Len()
}

// FacePoint returns the site point associated with face.
func (d *Diagram) FacePoint(face FaceKey) Point {
	return d.faces.MustGet(face).point
}

// FaceOuterComponent returns one of face's bounding half-edges, and whether
// the face has one yet.
func (d *Diagram) FaceOuterComponent(face FaceKey) (HalfEdgeKey, bool) {
	f := d.faces.MustGet(face)
	return f.outerComponent, f.outerComponent.Valid()
}

// SetFaceOuterComponent sets face's outer component half-edge.
func (d *Diagram) SetFaceOuterComponent(face FaceKey, he HalfEdgeKey) {
	f := d.faces.MustGet(face)
	f.outerComponent = he
	d.faces.MustSet(face, f)
}

// AddVertex creates a vertex at point.
func (d *Diagram) AddVertex(point Point) VertexKey {
	return d.vertices.Insert(vertexData{point: point})
}

// RemoveVertex deletes vertex from the diagram. Callers must ensure no live
// half-edge still references it as origin or destination (spec.md §9's
// deletion-ordering note).
func (d *Diagram) RemoveVertex(vertex VertexKey) {
	d.vertices.Remove(vertex)
}

// VertexPoint returns the position of vertex.
func (d *Diagram) VertexPoint(vertex VertexKey) Point {
	return d.vertices.MustGet(vertex).point
}

// Vertices returns the key of every vertex in the diagram.
func (d *Diagram) Vertices() []VertexKey {
	return d.vertices.Keys()
}

// AddHalfEdge creates a half-edge incident to face. If face had no outer
// component yet, the new half-edge becomes it.
func (d *Diagram) AddHalfEdge(face FaceKey) HalfEdgeKey {
	he := d.halfEdges.Insert(halfEdgeData{incidentFace: face})
	if _, ok := d.FaceOuterComponent(face); !ok {
		d.SetFaceOuterComponent(face, he)
	}
	return he
}

// AddEdge creates a twinned pair of half-edges between faceLeft and
// faceRight: twin(e1)=e2, twin(e2)=e1, incidentFace(e1)=faceLeft,
// incidentFace(e2)=faceRight. The half-edges are otherwise unpopulated.
func (d *Diagram) AddEdge(faceLeft, faceRight FaceKey) (HalfEdgeKey, HalfEdgeKey) {
	e1 := d.AddHalfEdge(faceLeft)
	e2 := d.AddHalfEdge(faceRight)
	d.setHalfEdgeTwin(e1, e2)
	d.setHalfEdgeTwin(e2, e1)
	return e1, e2
}

// RemoveHalfEdge deletes he from the diagram.
func (d *Diagram) RemoveHalfEdge(he HalfEdgeKey) {
	d.halfEdges.Remove(he)
}

func (d *Diagram) setHalfEdgeTwin(he, twin HalfEdgeKey) {
	e := d.halfEdges.MustGet(he)
	e.twin = twin
	d.halfEdges.MustSet(he, e)
}

// HalfEdgeTwin returns he's twin and whether it is set.
func (d *Diagram) HalfEdgeTwin(he HalfEdgeKey) (HalfEdgeKey, bool) {
	e := d.halfEdges.MustGet(he)
	return e.twin, e.twin.Valid()
}

// HalfEdgeIncidentFace returns the face he bounds.
func (d *Diagram) HalfEdgeIncidentFace(he HalfEdgeKey) FaceKey {
	return d.halfEdges.MustGet(he).incidentFace
}

// HalfEdgePrev returns the half-edge preceding he around its face, and
// whether it is set.
func (d *Diagram) HalfEdgePrev(he HalfEdgeKey) (HalfEdgeKey, bool) {
	e := d.halfEdges.MustGet(he)
	return e.prev, e.prev.Valid()
}

// HalfEdgeNext returns the half-edge following he around its face, and
// whether it is set.
func (d *Diagram) HalfEdgeNext(he HalfEdgeKey) (HalfEdgeKey, bool) {
	e := d.halfEdges.MustGet(he)
	return e.next, e.next.Valid()
}

// Link sets both directions of the prev/next cycle between prev and next:
// next(prev) = next, prev(next) = prev.
func (d *Diagram) Link(prev, next HalfEdgeKey) {
	e := d.halfEdges.MustGet(prev)
	e.next = next
	d.halfEdges.MustSet(prev, e)

	e = d.halfEdges.MustGet(next)
	e.prev = prev
	d.halfEdges.MustSet(next, e)
}

// SetHalfEdgeOrigin sets he's origin vertex.
func (d *Diagram) SetHalfEdgeOrigin(he HalfEdgeKey, v VertexKey) {
	e := d.halfEdges.MustGet(he)
	e.origin = setVertex(v)
	d.halfEdges.MustSet(he, e)
}

// HalfEdgeOrigin returns he's origin vertex, if assigned.
func (d *Diagram) HalfEdgeOrigin(he HalfEdgeKey) HalfEdgeVertex {
	return d.halfEdges.MustGet(he).origin
}

// SetHalfEdgeDestination sets he's destination vertex.
func (d *Diagram) SetHalfEdgeDestination(he HalfEdgeKey, v VertexKey) {
	e := d.halfEdges.MustGet(he)
	e.destination = setVertex(v)
	d.halfEdges.MustSet(he, e)
}

// HalfEdgeDestination returns he's destination vertex, if assigned.
func (d *Diagram) HalfEdgeDestination(he HalfEdgeKey) HalfEdgeVertex {
	return d.halfEdges.MustGet(he).destination
}

// HalfEdgeOriginPoint returns the position of he's origin vertex. Panics if
// the origin is unset.
func (d *Diagram) HalfEdgeOriginPoint(he HalfEdgeKey) Point {
	v, ok := d.HalfEdgeOrigin(he).Key()
	if !ok {
		panic("voronoi: half-edge origin unset")
	}
	return d.VertexPoint(v)
}

// HalfEdges returns the key of every half-edge in the diagram.
func (d *Diagram) HalfEdges() []HalfEdgeKey {
	return d.halfEdges.Keys()
}

// EdgeIter walks the half-edges bounding face, starting at its outer
// component and following next until it returns to the start. It is a
// lazy, finite iterator: at most one pass around the cycle.
type EdgeIter struct {
	d        *Diagram
	start    HalfEdgeKey
	current  HalfEdgeKey
	started  bool
	finished bool
}

// OuterEdges returns an iterator over face's bounding half-edges. Panics if
// face has no outer component yet.
func (d *Diagram) OuterEdges(face FaceKey) *EdgeIter {
	start, ok := d.FaceOuterComponent(face)
	if !ok {
		panic("voronoi: face has no outer component")
	}
	return &EdgeIter{d: d, start: start}
}

// Next advances the iterator and returns the next half-edge, or false when
// the cycle has closed.
func (it *EdgeIter) Next() (HalfEdgeKey, bool) {
	if it.finished {
		return HalfEdgeKey{}, false
	}
	if !it.started {
		it.started = true
		it.current = it.start
		return it.current, true
	}
	next, ok := it.d.HalfEdgeNext(it.current)
	if !ok {
		it.finished = true
		return HalfEdgeKey{}, false
	}
	if next == it.start {
		it.finished = true
		return HalfEdgeKey{}, false
	}
	it.current = next
	return it.current, true
}

// FaceArea returns the signed shoelace area of face's outer cycle, made
// positive.
func (d *Diagram) FaceArea(face FaceKey) float64 {
	it := d.OuterEdges(face)
	var sum float64
	for he, ok := it.Next(); ok; he, ok = it.Next() {
		origin, hasOrigin := d.HalfEdgeOrigin(he).Key()
		dest, hasDest := d.HalfEdgeDestination(he).Key()
		if !hasOrigin || !hasDest {
			continue
		}
		o := d.VertexPoint(origin)
		e := d.VertexPoint(dest)
		sum += o.X*e.Y - e.X*o.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum * 0.5
}

// FaceCentroid returns the arithmetic mean of face's outer-cycle origin
// points.
func (d *Diagram) FaceCentroid(face FaceKey) Point {
	it := d.OuterEdges(face)
	var sum Point
	var n int
	for he, ok := it.Next(); ok; he, ok = it.Next() {
		origin, hasOrigin := d.HalfEdgeOrigin(he).Key()
		if !hasOrigin {
			continue
		}
		sum = sum.Add(d.VertexPoint(origin))
		n++
	}
	if n == 0 {
		return d.FacePoint(face)
	}
	return sum.Scale(1 / float64(n))
}

// IsFaceOnBorder reports whether any of face's outer half-edges has no
// twin, i.e. lies on the bounding box: the half-edges linkVertices stitches
// along the box (during edge completion and clipping) have no twin.
// Reserved for Delaunay dual filtering: a face on the border has at least
// one neighbor relationship the dual should not report.
func (d *Diagram) IsFaceOnBorder(face FaceKey) bool {
	it := d.OuterEdges(face)
	for he, ok := it.Next(); ok; he, ok = it.Next() {
		if _, hasTwin := d.HalfEdgeTwin(he); !hasTwin {
			return true
		}
	}
	return false
}
