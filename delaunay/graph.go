// Package delaunay derives the Delaunay triangulation dual graph from a
// finished Voronoi diagram: one vertex per face, one edge per pair of
// faces sharing a twinned half-edge. It is a pure read of a Diagram built
// by the voronoi package; it never feeds back into the sweep itself.
package delaunay

import (
	"math"

	"github.com/katalvlaran/lvlath/graph/core"

	voronoi "github.com/arl/go-voronoi"
)

// vertexID names a graph vertex after its originating face's pool index,
// so the same face always maps to the same vertex ID across calls.
func vertexID(face voronoi.FaceKey) string {
	return face.String()
}

// FromDiagram builds the undirected, weighted dual graph of d using the
// pack's own graph type rather than a bespoke adjacency structure. Edge
// weight is the integer-scaled Euclidean distance between the two sites,
// since core.Edge.Weight is int64; distances are scaled by 1e6 and rounded
// to the nearest integer to preserve useful precision for typical
// unit-square inputs.
func FromDiagram(d *voronoi.Diagram) *core.Graph {
	g := core.NewGraph(false, true)

	faces := d.Faces()
	for _, face := range faces {
		point := d.FacePoint(face)
		g.AddVertex(&core.Vertex{
			ID: vertexID(face),
			Metadata: map[string]interface{}{
				"x":        point.X,
				"y":        point.Y,
				"area":     d.FaceArea(face),
				"onBorder": d.IsFaceOnBorder(face),
			},
		})
	}

	seen := make(map[[2]string]bool)
	for _, face := range faces {
		it := d.OuterEdges(face)
		for he, ok := it.Next(); ok; he, ok = it.Next() {
			twin, hasTwin := d.HalfEdgeTwin(he)
			if !hasTwin {
				continue
			}
			neighbor := d.HalfEdgeIncidentFace(twin)
			a, b := vertexID(face), vertexID(neighbor)
			if a == b {
				continue
			}
			key := [2]string{a, b}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			weight := int64(math.Round(voronoi.Distance(d.FacePoint(face), d.FacePoint(neighbor)) * 1e6))
			g.AddEdge(a, b, weight)
		}
	}

	return g
}
