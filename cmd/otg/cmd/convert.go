package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/board"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/mesh"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/stackup"
	"github.com/spf13/cobra"
)

var (
	convertOutput      string
	convertMTL         string
	convertTriangulate bool

	boardThickness      float64
	copperThickness     float64
	soldermaskThickness float64
	silkscreenThickness float64

	skipTopCopper        bool
	skipBottomCopper     bool
	skipTopSoldermask    bool
	skipBottomSoldermask bool
	skipTopSilkscreen    bool
	skipBottomSilkscreen bool
	skipDrills           bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <files...>",
	Short: "Convert Gerber and drill files to a 3D OBJ model",
	Long: `Parses the given Gerber layer and Excellon drill files, extrudes every
trace, pad, region and hole at its layer's vertical position and writes the
result as a Wavefront OBJ file.

Layer roles are recognized by extension: .gtl/.gbl (copper), .gts/.gbs
(soldermask), .gto/.gbo (silkscreen). Drill files are .drl or anything with
"drill" in the name. Unrecognized files are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "board.obj", "output OBJ file")
	convertCmd.Flags().StringVar(&convertMTL, "mtl", "", "also write a material library to this file")
	convertCmd.Flags().BoolVar(&convertTriangulate, "triangulate", false, "fan-triangulate faces for strict-triangle consumers")

	convertCmd.Flags().Float64Var(&boardThickness, "board-thickness", 1.6, "board substrate thickness in mm")
	convertCmd.Flags().Float64Var(&copperThickness, "copper-thickness", 0.035, "copper layer thickness in mm")
	convertCmd.Flags().Float64Var(&soldermaskThickness, "soldermask-thickness", 0.025, "soldermask layer thickness in mm")
	convertCmd.Flags().Float64Var(&silkscreenThickness, "silkscreen-thickness", 0.020, "silkscreen layer thickness in mm")

	convertCmd.Flags().BoolVar(&skipTopCopper, "no-top-copper", false, "skip the top copper layer")
	convertCmd.Flags().BoolVar(&skipBottomCopper, "no-bottom-copper", false, "skip the bottom copper layer")
	convertCmd.Flags().BoolVar(&skipTopSoldermask, "no-top-soldermask", false, "skip the top soldermask layer")
	convertCmd.Flags().BoolVar(&skipBottomSoldermask, "no-bottom-soldermask", false, "skip the bottom soldermask layer")
	convertCmd.Flags().BoolVar(&skipTopSilkscreen, "no-top-silkscreen", false, "skip the top silkscreen layer")
	convertCmd.Flags().BoolVar(&skipBottomSilkscreen, "no-bottom-silkscreen", false, "skip the bottom silkscreen layer")
	convertCmd.Flags().BoolVar(&skipDrills, "no-drills", false, "skip drill holes")
}

func convertOptions() board.Options {
	opts := board.DefaultOptions()
	opts.Thicknesses = stackup.Thicknesses{
		Board:      boardThickness,
		Copper:     copperThickness,
		Soldermask: soldermaskThickness,
		Silkscreen: silkscreenThickness,
	}
	opts.Import[stackup.TopCopper] = !skipTopCopper
	opts.Import[stackup.BottomCopper] = !skipBottomCopper
	opts.Import[stackup.TopSoldermask] = !skipTopSoldermask
	opts.Import[stackup.BottomSoldermask] = !skipBottomSoldermask
	opts.Import[stackup.TopSilkscreen] = !skipTopSilkscreen
	opts.Import[stackup.BottomSilkscreen] = !skipBottomSilkscreen
	opts.ImportDrills = !skipDrills
	return opts
}

func runConvert(cmd *cobra.Command, args []string) error {
	result, err := board.Import(args, convertOptions())
	if err != nil {
		return err
	}

	if verbose {
		for _, role := range stackup.Roles {
			lr, ok := result.Layers[role]
			if !ok {
				continue
			}
			fmt.Printf("  %-18s %d paths, %d flashes, %d regions, %d solids\n",
				role.Title()+":",
				len(lr.Layer.Paths), len(lr.Layer.Flashes), len(lr.Layer.Regions),
				len(lr.Solids))
		}
		if result.Drills != nil {
			fmt.Printf("  %-18s %d holes\n", "Drills:", len(result.Drills.Holes))
		}
	}

	out, err := os.Create(convertOutput)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	if err := mesh.WriteOBJ(out, result.Objects(convertTriangulate), convertMTL); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}

	if convertMTL != "" {
		mtl, err := os.Create(convertMTL)
		if err != nil {
			return fmt.Errorf("failed to create material library: %w", err)
		}
		defer mtl.Close()
		if err := mesh.WriteMTL(mtl, result.Materials()); err != nil {
			return fmt.Errorf("failed to write material library: %w", err)
		}
	}

	if !result.Bounds.IsEmpty() {
		fmt.Printf("Board size: %.2f x %.2f mm\n", result.Bounds.Width(), result.Bounds.Height())
	}
	fmt.Printf("Imported %d layers to %s\n", len(result.Layers), convertOutput)
	return nil
}
