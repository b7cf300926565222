package voronoi

// LloydRelax runs Lloyd's algorithm: iterations repetitions of building the
// diagram and replacing each site with its own face's centroid. It returns
// the relaxed point set; the final Diagram is discarded (callers that need
// it should call Build once more on the result).
//
// A site whose face has no completed edges after Build (such as the one
// face of a single-site input, which gets no half-edge at all) is left in
// place for that iteration rather than treated as an error.
func LloydRelax(points []Point, iterations int, ctx *Context) ([]Point, error) {
	current := make([]Point, len(points))
	copy(current, points)

	for i := 0; i < iterations; i++ {
		d, err := Build(current, ctx)
		if err != nil {
			return nil, err
		}
		relaxed := make([]Point, len(current))
		for j, face := range d.Faces() {
			if _, ok := d.FaceOuterComponent(face); !ok {
				relaxed[j] = current[j]
				continue
			}
			relaxed[j] = d.FaceCentroid(face)
		}
		current = relaxed
	}

	return current, nil
}
