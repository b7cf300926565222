package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd loads a YAML build config and echoes the settings that would
// take effect, without building anything.
var infoCmd = &cobra.Command{
	Use:   "info CONFIG",
	Short: "show the effective settings of a build config",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("sites:            %d\n", cfg.Sites)
	fmt.Printf("seed:             %d\n", cfg.Seed)
	fmt.Printf("box:              left=%g right=%g top=%g bottom=%g\n",
		cfg.Box.Left, cfg.Box.Right, cfg.Box.Top, cfg.Box.Bottom)
	fmt.Printf("lloyd_iterations: %d\n", cfg.LloydIterations)
	if cfg.ObjOut != "" {
		fmt.Printf("obj_out:          %s\n", cfg.ObjOut)
	}
	return nil
}
