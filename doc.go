// Package voronoi computes the bounded Voronoi diagram of a set of 2D
// points using Fortune's sweep-line algorithm, and exposes the result as a
// doubly connected edge list (DCEL).
//
// Build runs the sweep to completion in a single call; the beachline, the
// event queue, and all intermediate arenas are scoped to that call. Only
// the returned Diagram outlives it.
package voronoi
