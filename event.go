package voronoi

// EventKind tags an Event as either a site event or a circle event.
type EventKind int

const (
	// SiteEvent fires when the sweep line reaches an input site.
	SiteEvent EventKind = iota
	// CircleEvent fires when three adjacent arcs become cocircular.
	CircleEvent
)

// Event is a site or circle event, ordered in the priority queue by Y (the
// sweep-line position at which it fires).
type Event struct {
	Y    float64
	Kind EventKind

	// Face is set for SiteEvent.
	Face FaceKey

	// Center and Arc are set for CircleEvent: Center is the circumcenter
	// that will become the new diagram vertex, Arc names the beachline
	// node (arc) that vanishes when the event fires.
	Center Point
	Arc    NodeKey
}

func newSiteEvent(y float64, face FaceKey) Event {
	return Event{Y: y, Kind: SiteEvent, Face: face}
}

func newCircleEvent(y float64, center Point, arc NodeKey) Event {
	return Event{Y: y, Kind: CircleEvent, Center: center, Arc: arc}
}
