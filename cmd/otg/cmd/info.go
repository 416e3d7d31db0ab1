package cmd

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/board"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/excellon"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/gerber"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/stackup"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <files...>",
	Short: "Show parsed contents of Gerber and drill files",
	Long: `Parses the given files and prints what was found in each: apertures,
paths, flashes and regions for Gerber layers; tools and holes for drill
files. Nothing is extruded or written.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fs := board.Classify(args)
	if len(fs.Layers) == 0 && fs.Drill == "" {
		return board.ErrNoRecognizedFiles
	}

	roles := make([]stackup.Role, 0, len(fs.Layers))
	for role := range fs.Layers {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	for _, role := range roles {
		path := fs.Layers[role]
		layer, err := gerber.ParseFile(path)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}
		printLayerInfo(string(role), path, layer)
	}

	if fs.Drill != "" {
		drills, err := excellon.ParseFile(fs.Drill)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", fs.Drill, err)
		}
		printDrillInfo(fs.Drill, drills)
	}

	return nil
}

func printLayerInfo(role, path string, layer *gerber.BoardLayer) {
	fmt.Printf("%s (%s)\n", role, path)
	fmt.Printf("  Format: %d.%d, unit scale %.1f\n",
		layer.Format.IntegerDigits, layer.Format.DecimalDigits, layer.UnitScale)
	fmt.Printf("  Apertures: %d, Paths: %d, Flashes: %d, Regions: %d\n",
		len(layer.Apertures), len(layer.Paths), len(layer.Flashes), len(layer.Regions))

	if verbose {
		codes := make([]int, 0, len(layer.Apertures))
		for code := range layer.Apertures {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			ap := layer.Apertures[code]
			fmt.Printf("    D%d: %s %v\n", code, ap.Shape, ap.Params)
		}
	}

	stats := layer.Stats
	if stats.DirectivesSkipped > 0 || stats.RegionsDropped > 0 || stats.BadCoordinates > 0 {
		fmt.Printf("  Skipped: %d directives, %d regions, %d coordinates\n",
			stats.DirectivesSkipped, stats.RegionsDropped, stats.BadCoordinates)
	}
	fmt.Println()
}

func printDrillInfo(path string, drills *excellon.DrillFile) {
	fmt.Printf("drill (%s)\n", path)
	fmt.Printf("  Tools: %d, Holes: %d\n", len(drills.Tools), len(drills.Holes))
	if verbose {
		for _, tool := range drills.Tools {
			fmt.Printf("    T%d: %.3f mm\n", tool.Number, tool.Diameter)
		}
	}
	if drills.Stats.HolesDropped > 0 {
		fmt.Printf("  Skipped: %d holes (no tool selected)\n", drills.Stats.HolesDropped)
	}
	fmt.Println()
}
