package voronoi

import "math"

// Side names one of the four sides of a Box.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// NextSide returns the next side walking anti-clockwise around the box:
// Left -> Bottom -> Right -> Top -> Left.
func NextSide(s Side) Side {
	switch s {
	case SideLeft:
		return SideBottom
	case SideBottom:
		return SideRight
	case SideRight:
		return SideTop
	case SideTop:
		return SideLeft
	default:
		return SideNone
	}
}

// Box is an axis-aligned rectangle used to bound the diagram. Top < Bottom,
// since y grows downward along the sweep: the sweep line moves from small y
// to large y.
type Box struct {
	Left, Right, Top, Bottom float64
}

// CanonicalBox is the unit square [0,1]^2 that every diagram is ultimately
// clipped to, per spec.md's Build contract.
var CanonicalBox = Box{Left: 0, Right: 1, Top: 0, Bottom: 1}

// Contains is an inclusive point-in-rectangle test.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// Grow expands b, if needed, so that it contains p.
func (b *Box) Grow(p Point) {
	b.Left = math.Min(b.Left, p.X)
	b.Right = math.Max(b.Right, p.X)
	b.Top = math.Min(b.Top, p.Y)
	b.Bottom = math.Max(b.Bottom, p.Y)
}

// IntersectRay returns the first point at which the ray from origin (which
// must lie inside b) in the given direction crosses the boundary of b, and
// which side was hit. direction must not be the zero vector.
func (b Box) IntersectRay(origin, direction Point) (Point, Side) {
	var t1 float64
	var side1 Side
	switch {
	case direction.X < 0:
		t1, side1 = (b.Right-origin.X)/direction.X, SideRight
	case direction.X > 0:
		t1, side1 = (b.Left-origin.X)/direction.X, SideLeft
	default:
		t1, side1 = math.Inf(-1), SideNone
	}

	var t2 float64
	var side2 Side
	switch {
	case direction.Y > 0:
		t2, side2 = (b.Top-origin.Y)/direction.Y, SideTop
	case direction.Y < 0:
		t2, side2 = (b.Bottom-origin.Y)/direction.Y, SideBottom
	default:
		t2, side2 = math.Inf(1), SideNone
	}

	t, side := t1, side1
	if math.Abs(t2) < math.Abs(t1) {
		t, side = t2, side2
	}
	return origin.Add(direction.Scale(t)), side
}

// segHit is one intersection of a segment with the box boundary.
type segHit struct {
	Point Point
	Side  Side
}

// IntersectSegment returns the 0, 1, or 2 interior intersections of the
// segment from a to b with the boundary of box, in the order the four
// sides are tested (left, right, top, bottom).
func (box Box) IntersectSegment(a, b Point) []segHit {
	var hits []segHit
	direction := b.Sub(a)

	if a.X < box.Left || b.X < box.Left {
		t := (box.Left - a.X) / direction.X
		if t > 0 && t < 1 {
			p := a.Add(direction.Scale(t))
			if p.Y >= box.Top && p.Y <= box.Bottom {
				hits = append(hits, segHit{p, SideLeft})
			}
		}
	}
	if a.X > box.Right || b.X > box.Right {
		t := (box.Right - a.X) / direction.X
		if t > 0 && t < 1 {
			p := a.Add(direction.Scale(t))
			if p.Y >= box.Top && p.Y <= box.Bottom {
				hits = append(hits, segHit{p, SideRight})
			}
		}
	}
	if a.Y < box.Top || b.Y < box.Top {
		t := (box.Top - a.Y) / direction.Y
		if t > 0 && t < 1 {
			p := a.Add(direction.Scale(t))
			if p.X >= box.Left && p.X <= box.Right {
				hits = append(hits, segHit{p, SideTop})
			}
		}
	}
	if a.Y > box.Bottom || b.Y > box.Bottom {
		t := (box.Bottom - a.Y) / direction.Y
		if t > 0 && t < 1 {
			p := a.Add(direction.Scale(t))
			if p.X >= box.Left && p.X <= box.Right {
				hits = append(hits, segHit{p, SideBottom})
			}
		}
	}
	return hits
}

// Corner returns the corner point shared by s1 and s2. Panics if s1 and s2
// are not adjacent sides.
func (b Box) Corner(s1, s2 Side) Point {
	pair := func(a, c Side) bool { return (s1 == a && s2 == c) || (s1 == c && s2 == a) }
	switch {
	case pair(SideTop, SideLeft):
		return Point{b.Left, b.Top}
	case pair(SideTop, SideRight):
		return Point{b.Right, b.Top}
	case pair(SideBottom, SideLeft):
		return Point{b.Left, b.Bottom}
	case pair(SideBottom, SideRight):
		return Point{b.Right, b.Bottom}
	default:
		panic("voronoi: invalid corner sides")
	}
}
