package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otg",
	Short: "OpenTraceGerber - Gerber and drill file to 3D mesh converter",
	Long: `OpenTraceGerber (otg) converts PCB fabrication data into 3D models:
  - Gerber RS-274X layer files (.gtl/.gbl/.gts/.gbs/.gto/.gbo)
  - Excellon drill files (.drl)

Examples:
  otg convert board.gtl board.gbl board.drl -o board.obj
  otg convert *.g* --board-thickness 1.2 --mtl board.mtl -o board.obj
  otg info board.gtl board.drl`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
