package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/arl/gogeo/f32"
	"github.com/arl/gogeo/f32/d3"

	voronoi "github.com/arl/go-voronoi"
)

// writeOBJ writes a triangulated Wavefront OBJ mesh of d's faces to path:
// one fan of triangles per face, centered on the face's centroid, with z
// pinned to 0. This is the inverse of the teacher's OBJ reader
// (meshloaderobj.go): where that parsed "v"/"f" lines into a vertex/index
// buffer, this walks a Diagram's faces and emits the same two line kinds.
//
// Coordinates are converted from this package's float64 to the float32
// gogeo (f32, f32/d3) types used at this CLI boundary, and rounded to 6 decimal
// digits so repeated runs produce byte-stable output.
func writeOBJ(path string, d *voronoi.Diagram) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintln(w, "# generated by voronoi build")

	nextIndex := 1 // OBJ vertex indices are 1-based
	for _, face := range d.Faces() {
		centroid := toVec3(d.FaceCentroid(face))
		writeVertexLine(w, centroid)
		centroidIdx := nextIndex
		nextIndex++

		var ring []int
		it := d.OuterEdges(face)
		for he, ok := it.Next(); ok; he, ok = it.Next() {
			origin, hasOrigin := d.HalfEdgeOrigin(he).Key()
			if !hasOrigin {
				continue
			}
			writeVertexLine(w, toVec3(d.VertexPoint(origin)))
			ring = append(ring, nextIndex)
			nextIndex++
		}

		for i := 0; i < len(ring); i++ {
			j := (i + 1) % len(ring)
			fmt.Fprintf(w, "f %d %d %d\n", centroidIdx, ring[i], ring[j])
		}
	}

	return nil
}

func toVec3(p voronoi.Point) d3.Vec3 {
	v := d3.NewVec3XYZ(f32.Round(float32(p.X), 6), f32.Round(float32(p.Y), 6), 0)
	return v
}

func writeVertexLine(w *bufio.Writer, v d3.Vec3) {
	fmt.Fprintf(w, "v %f %f %f\n", v.X(), v.Y(), v.Z())
}
