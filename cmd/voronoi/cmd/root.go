package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "voronoi",
	Short: "build bounded Voronoi diagrams",
	Long: `voronoi computes bounded Voronoi diagrams from random or
file-provided point sets:
	- build diagrams from N random sites or from an existing OBJ mesh,
	- relax a site set with Lloyd's algorithm,
	- export the result to a triangulated Wavefront OBJ file,
	- inspect the effective settings of a YAML build config.`,
}

// Execute adds all child commands to RootCmd and runs it. Called once from
// main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
