package voronoi

import (
	"errors"
	"fmt"
)

// ErrDuplicateSite is returned (wrapped in a *SiteError) when two input
// points coincide exactly, detected while locating the arc above a
// degenerate-focus site.
var ErrDuplicateSite = errors.New("voronoi: duplicate site")

// ErrGeometryInvariant is returned (wrapped in an *InvariantError) when the
// bounding-box clipping pass encounters a configuration the geometry
// guarantees should be impossible, such as a single edge reporting more
// than two box intersections.
var ErrGeometryInvariant = errors.New("voronoi: geometry invariant violated")

// ErrNonFiniteInput is returned (wrapped in a *SiteError) when an input
// point has a NaN or infinite coordinate.
var ErrNonFiniteInput = errors.New("voronoi: non-finite input coordinate")

// SiteError reports a fatal condition tied to one or more input sites.
type SiteError struct {
	Err    error
	Points []Point
}

func (e *SiteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Err, e.Points)
}

func (e *SiteError) Unwrap() error { return e.Err }

// InvariantError reports a fatal condition found during bounding-box
// clipping, along with the offending point for diagnostics.
type InvariantError struct {
	Err     error
	Detail  string
	AtPoint Point
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s (at %v)", e.Err, e.Detail, e.AtPoint)
}

func (e *InvariantError) Unwrap() error { return e.Err }
