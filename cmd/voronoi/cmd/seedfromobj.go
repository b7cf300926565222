package cmd

import (
	"fmt"

	"github.com/arl/gobj"
	"github.com/spf13/cobra"

	voronoi "github.com/arl/go-voronoi"
)

var seedOut string

// seedFromOBJCmd builds a diagram seeded from the XY projection of an
// existing OBJ mesh's vertices.
var seedFromOBJCmd = &cobra.Command{
	Use:   "seed-from-obj OBJFILE",
	Short: "build a diagram from an OBJ mesh's vertices",
	Long: `Load an existing .obj mesh, project its vertices to the XY plane
(dropping Z), deduplicate coincident points, and build a diagram from the
result.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeedFromOBJ,
}

func init() {
	RootCmd.AddCommand(seedFromOBJCmd)
	seedFromOBJCmd.Flags().StringVar(&seedOut, "out", "", "write the triangulated result to this .obj file")
}

func runSeedFromOBJ(cmd *cobra.Command, args []string) error {
	obj, err := gobj.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	seen := make(map[voronoi.Point]bool)
	var points []voronoi.Point
	for _, v := range obj.Verts() {
		p := voronoi.Point{X: v.X(), Y: v.Y()}
		if seen[p] {
			continue
		}
		seen[p] = true
		points = append(points, p)
	}

	ctx := voronoi.NewContext()
	d, err := voronoi.Build(points, ctx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	fmt.Printf("%s: %d vertices -> %d unique sites -> %d faces\n",
		args[0], len(obj.Verts()), len(points), d.NumFaces())

	if seedOut != "" {
		if err := writeOBJ(seedOut, d); err != nil {
			return fmt.Errorf("writing %s: %w", seedOut, err)
		}
		fmt.Printf("wrote %s\n", seedOut)
	}
	return nil
}
