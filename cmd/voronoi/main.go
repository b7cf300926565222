// Command voronoi builds bounded Voronoi diagrams from random or
// file-provided point sets, optionally relaxes them with Lloyd's algorithm,
// and can export the result as a triangulated Wavefront OBJ mesh.
package main

import "github.com/arl/go-voronoi/cmd/voronoi/cmd"

func main() {
	cmd.Execute()
}
