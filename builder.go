package voronoi

// Build computes the Voronoi diagram of points using Fortune's sweep-line
// algorithm. The edges still open when the sweep ends are closed against a
// box containing the unit square, every input site and every vertex the
// sweep created; the result is then clipped to the unit square
// (CanonicalBox).
//
// Build returns an error if any input coordinate is non-finite
// (ErrNonFiniteInput), if two sites coincide exactly (ErrDuplicateSite), or
// if the bounding-box clipping pass finds a configuration the geometry
// guarantees should be impossible (ErrGeometryInvariant). An empty input
// returns an empty, valid Diagram rather than an error.
//
// ctx may be nil, in which case diagnostics are discarded.
func Build(points []Point, ctx *Context) (*Diagram, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	ctx.StartTimer(TimerTotal)
	defer ctx.StopTimer(TimerTotal)

	for _, p := range points {
		if !p.IsFinite() {
			return nil, &SiteError{Err: ErrNonFiniteInput, Points: []Point{p}}
		}
	}

	d := NewDiagram()
	if len(points) == 0 {
		return d, nil
	}

	box := CanonicalBox
	for _, p := range points {
		box.Grow(p)
	}

	bl := NewBeachline()
	q := NewEventQueue()
	for _, p := range points {
		face := d.AddFace(p)
		q.Push(newSiteEvent(p.Y, face))
	}

	ctx.Log(LogProgress, "sweeping %d sites", len(points))
	ctx.StartTimer(TimerSweep)
	for q.Len() > 0 {
		ev, _ := q.Pop()
		var err error
		switch ev.Kind {
		case SiteEvent:
			err = handleSiteEvent(d, bl, q, ev)
		case CircleEvent:
			handleCircleEvent(d, bl, q, ev)
		}
		if err != nil {
			ctx.StopTimer(TimerSweep)
			ctx.Log(LogError, "sweep aborted: %v", err)
			return nil, err
		}
	}
	ctx.StopTimer(TimerSweep)

	for _, v := range d.Vertices() {
		box.Grow(d.VertexPoint(v))
	}

	ctx.StartTimer(TimerCompleteEdges)
	bl.CompleteEdges(box, d)
	ctx.StopTimer(TimerCompleteEdges)

	ctx.StartTimer(TimerClip)
	err := clipDiagram(d, CanonicalBox)
	ctx.StopTimer(TimerClip)
	if err != nil {
		ctx.Log(LogError, "clip aborted: %v", err)
		return nil, err
	}

	ctx.Log(LogProgress, "done: %d faces, %d vertices", d.NumFaces(), len(d.Vertices()))
	return d, nil
}

// handleSiteEvent inserts a new arc for the face named by ev into the
// beachline, splitting whichever arc currently sits above the site.
func handleSiteEvent(d *Diagram, bl *Beachline, q *EventQueue, ev Event) error {
	newFace := ev.Face
	point := d.FacePoint(newFace)

	if !bl.HasRoot() {
		bl.CreateRoot(newFace)
		return nil
	}

	arc, err := bl.LocateArcAbove(point, point.Y, d)
	if err != nil {
		return err
	}

	// The arcs adjacent to arc had circle events predicated on a triple
	// that included arc; both become false alarms the moment arc splits.
	if farLeft, ok := bl.GetPrev(arc); ok {
		cancelArcEvent(bl, q, farLeft)
	}
	if farRight, ok := bl.GetNext(arc); ok {
		cancelArcEvent(bl, q, farRight)
	}
	cancelArcEvent(bl, q, arc)

	left, mid, right := bl.BreakArc(arc, newFace)
	oldFace := bl.GetArcFace(left)

	// Both new arcs bounding mid share the same twin pair initially: as mid
	// grows, left and right separate, and later circle events fix up the
	// vertex endpoints and split the shared references apart.
	e1, e2 := d.AddEdge(oldFace, newFace)
	bl.SetRightHalfEdge(left, e1)
	bl.SetLeftHalfEdge(mid, e2)
	bl.SetRightHalfEdge(mid, e2)
	bl.SetLeftHalfEdge(right, e1)

	addCircleEvent(d, bl, q, left, point.Y)
	addCircleEvent(d, bl, q, right, point.Y)

	return nil
}

// handleCircleEvent removes the arc that has shrunk to zero width,
// recording the new Voronoi vertex where its two bounding edges meet and
// opening a new edge between its former neighbors.
func handleCircleEvent(d *Diagram, bl *Beachline, q *EventQueue, ev Event) {
	node := ev.Arc
	left, okL := bl.GetPrev(node)
	right, okR := bl.GetNext(node)
	if !okL || !okR {
		// Would only happen for an event that should already have been
		// canceled; defensive no-op rather than a panic.
		return
	}

	cancelArcEvent(bl, q, left)
	cancelArcEvent(bl, q, right)

	vertex := d.AddVertex(ev.Center)

	// leftBorder/rightBorder are left_half_edge(A)/right_half_edge(A).
	// prevRight/nextLeft are right_half_edge(L)/left_half_edge(R), captured
	// via twin before either arc's own stored reference is reassigned
	// below: right_half_edge(L) is always the twin of left_half_edge(A),
	// and left_half_edge(R) is always the twin of right_half_edge(A).
	leftBorder := bl.GetLeftHalfEdge(node)
	rightBorder := bl.GetRightHalfEdge(node)
	prevRight, _ := d.HalfEdgeTwin(leftBorder)
	nextLeft, _ := d.HalfEdgeTwin(rightBorder)

	d.SetHalfEdgeOrigin(prevRight, vertex)
	d.SetHalfEdgeDestination(leftBorder, vertex)
	d.SetHalfEdgeOrigin(rightBorder, vertex)
	d.SetHalfEdgeDestination(nextLeft, vertex)

	d.Link(leftBorder, rightBorder)

	leftFace := bl.GetArcFace(left)
	rightFace := bl.GetArcFace(right)
	e1, e2 := d.AddEdge(leftFace, rightFace)
	d.SetHalfEdgeDestination(e1, vertex)
	d.SetHalfEdgeOrigin(e2, vertex)
	d.Link(e1, prevRight)
	d.Link(nextLeft, e2)

	bl.SetRightHalfEdge(left, e1)
	bl.SetLeftHalfEdge(right, e2)

	bl.DeleteNode(node)

	addCircleEvent(d, bl, q, left, ev.Y)
	addCircleEvent(d, bl, q, right, ev.Y)
}

// addCircleEvent schedules a circle event for node if its current
// neighbors' breakpoints are converging, per the validity predicate
// described for the beachline ("three consecutive arcs whose breakpoints
// are moving toward each other, at a y not already behind the sweep
// line").
func addCircleEvent(d *Diagram, bl *Beachline, q *EventQueue, node NodeKey, sweepY float64) {
	left, okL := bl.GetPrev(node)
	right, okR := bl.GetNext(node)
	if !okL || !okR {
		return
	}

	a := d.FacePoint(bl.GetArcFace(left))
	b := d.FacePoint(bl.GetArcFace(node))
	c := d.FacePoint(bl.GetArcFace(right))

	// The breakpoints converge only if (a, b, c) turn clockwise: a
	// counter-clockwise or collinear triple means the arc is widening, or
	// degenerate, and will never collapse to a point.
	if Det(b.Sub(a), c.Sub(a)) >= 0 {
		return
	}

	center := Circumcenter(a, b, c)
	eventY := center.Y + Distance(center, b)
	if eventY <= sweepY-Epsilon {
		return
	}

	h := q.Push(newCircleEvent(eventY, center, node))
	bl.SetArcEvent(node, h)
}

// cancelArcEvent removes node's scheduled circle event, if it has one.
// Safe to call on an arc with no pending event.
func cancelArcEvent(bl *Beachline, q *EventQueue, node NodeKey) {
	if h := bl.GetArcEvent(node); h.Valid() {
		q.Remove(h)
		bl.SetArcEvent(node, QueueHandle{})
	}
}

// clipAnchor records a half-edge that crosses box's boundary along with
// the side it crosses on, so the corner-stitching pass below can connect
// an outgoing anchor to its face's incoming anchor.
type clipAnchor struct {
	he   HalfEdgeKey
	side Side
}

// faceCycle collects the half-edges bounding face into a plain slice,
// ahead of any mutation: clipDiagram rewrites next/prev links as it runs,
// so it must not walk the cycle live via OuterEdges while doing so.
func faceCycle(d *Diagram, face FaceKey) []HalfEdgeKey {
	var cycle []HalfEdgeKey
	it := d.OuterEdges(face)
	for he, ok := it.Next(); ok; he, ok = it.Next() {
		cycle = append(cycle, he)
	}
	return cycle
}

// otherOuterEdge returns a half-edge of cycle other than removed, for
// relocating a face's outer component off an edge about to be deleted.
func otherOuterEdge(cycle []HalfEdgeKey, removed HalfEdgeKey) (HalfEdgeKey, bool) {
	for _, he := range cycle {
		if he != removed {
			return he, true
		}
	}
	return HalfEdgeKey{}, false
}

// clipDiagram clips every face's outer cycle against box (spec.md §4.7):
// edges entirely inside are untouched, edges crossing the boundary once or
// twice get new vertices at the crossing(s) (reusing a twin's crossing
// vertices when the twin was already clipped, so the cut stays watertight
// on both sides), edges entirely outside with no crossing are deleted
// along with their now-unreferenced origin, and whenever a face has both
// an "outgoing" and an "incoming" crossing, linkVertices stitches box
// corners between them so the face's cycle closes again.
func clipDiagram(d *Diagram, box Box) error {
	processed := make(map[HalfEdgeKey]bool)
	removeVertices := make(map[VertexKey]bool)
	var removeHalfEdges []HalfEdgeKey

	for _, face := range d.Faces() {
		if _, ok := d.FaceOuterComponent(face); !ok {
			continue
		}
		cycle := faceCycle(d, face)

		var incoming, outgoing *clipAnchor

		for _, he := range cycle {
			if processed[he] {
				continue
			}
			twin, hasTwin := d.HalfEdgeTwin(he)
			twinDone := hasTwin && processed[twin]

			origin, hasOrigin := d.HalfEdgeOrigin(he).Key()
			dest, hasDest := d.HalfEdgeDestination(he).Key()
			if !hasOrigin || !hasDest {
				processed[he] = true
				continue
			}

			a, b := d.VertexPoint(origin), d.VertexPoint(dest)
			aIn, bIn := box.Contains(a), box.Contains(b)
			processed[he] = true

			if aIn && bIn {
				continue
			}

			hits := box.IntersectSegment(a, b)
			if len(hits) > 2 {
				return &InvariantError{
					Err:     ErrGeometryInvariant,
					Detail:  "edge crosses bounding box more than twice",
					AtPoint: a,
				}
			}

			switch {
			case !aIn && !bIn:
				removeVertices[origin] = true
				switch len(hits) {
				case 0:
					if cur, ok := d.FaceOuterComponent(face); ok && cur == he {
						if survivor, ok := otherOuterEdge(cycle, he); ok {
							d.SetFaceOuterComponent(face, survivor)
						}
					}
					removeHalfEdges = append(removeHalfEdges, he)
				case 2:
					// IntersectSegment reports hits in side order; put the
					// one nearer to a first, so hits[1] is where he leaves box.
					if Distance(a, hits[0].Point) > Distance(a, hits[1].Point) {
						hits[0], hits[1] = hits[1], hits[0]
					}
					var newOrigin, newDest VertexKey
					if twinDone {
						newOrigin, _ = d.HalfEdgeDestination(twin).Key()
						newDest, _ = d.HalfEdgeOrigin(twin).Key()
					} else {
						newOrigin = d.AddVertex(hits[0].Point)
						newDest = d.AddVertex(hits[1].Point)
					}
					d.SetHalfEdgeOrigin(he, newOrigin)
					d.SetHalfEdgeDestination(he, newDest)
					outgoing = &clipAnchor{he, hits[1].Side}
				}

			case !bIn:
				if len(hits) == 0 {
					continue
				}
				var newDest VertexKey
				if twinDone {
					newDest, _ = d.HalfEdgeOrigin(twin).Key()
				} else {
					newDest = d.AddVertex(hits[0].Point)
				}
				d.SetHalfEdgeDestination(he, newDest)
				outgoing = &clipAnchor{he, hits[0].Side}

			case !aIn:
				if len(hits) == 0 {
					continue
				}
				removeVertices[origin] = true
				var newOrigin VertexKey
				if twinDone {
					newOrigin, _ = d.HalfEdgeDestination(twin).Key()
				} else {
					newOrigin = d.AddVertex(hits[0].Point)
				}
				d.SetHalfEdgeOrigin(he, newOrigin)
				incoming = &clipAnchor{he, hits[0].Side}
			}
		}

		if incoming != nil && outgoing != nil {
			linkVertices(box, d, outgoing.he, outgoing.side, incoming.he, incoming.side)
		}
	}

	for _, he := range removeHalfEdges {
		d.RemoveHalfEdge(he)
	}
	for v := range removeVertices {
		d.RemoveVertex(v)
	}

	return nil
}
