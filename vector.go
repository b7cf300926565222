package voronoi

import "math"

// Epsilon is the tolerance used throughout the builder for comparisons
// against the sweep-line position and between site y-coordinates. It
// mirrors the Rust source this package was ported from, which used
// f64::EPSILON directly rather than a scaled tolerance.
const Epsilon = 2.220446049250313e-16

// Point is a point in the plane, or equivalently a 2D vector. Sites live in
// the unit square [0,1]^2 by convention; the algorithm itself tolerates any
// finite region.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Orthogonal returns p rotated 90 degrees counter-clockwise: (-y, x).
func Orthogonal(p Point) Point {
	return Point{-p.Y, p.X}
}

// Det returns the 2D determinant (cross product) of a and b.
func Det(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return p.Sub(q).Norm()
}

// IsFinite reports whether both components of p are finite (not NaN or
// +/-Inf).
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Circumcenter returns the center of the unique circle through p1, p2, p3.
// Callers must not invoke this on three collinear points: the result is
// undefined (division by zero) in that case. The sweep builder's
// circle-event validity predicate is responsible for never requesting the
// circumcenter of a degenerate triple that would actually get scheduled.
func Circumcenter(p1, p2, p3 Point) Point {
	v1 := Orthogonal(p1.Sub(p2))
	v2 := Orthogonal(p2.Sub(p3))
	delta := p3.Sub(p1).Scale(0.5)
	t := Det(delta, v2) / Det(v1, v2)
	return p1.Add(p2).Scale(0.5).Add(v1.Scale(t))
}

// approxEqual reports whether a and b differ by less than Epsilon, used for
// the degenerate-focus and tie-break checks spec'd for the beachline and
// circle-event predicate.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
