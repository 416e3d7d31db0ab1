// Package board drives a whole PCB import: classify input files by layer
// role, parse each one, extrude every primitive at its layer's vertical
// placement and size a substrate block under the result.
package board

import (
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/excellon"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/gerber"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/mesh"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/stackup"
)

// SubstrateMargin is added to each substrate dimension beyond the board's
// geometry bounds, in mm.
const SubstrateMargin = 5.0

// Errors reported as user-visible cancellations rather than parse failures.
var (
	ErrNoFiles           = errors.New("no files selected")
	ErrNoRecognizedFiles = errors.New("no valid Gerber or drill files found")
)

// Options is the configuration surface of one import.
type Options struct {
	Thicknesses  stackup.Thicknesses
	Import       map[stackup.Role]bool // per-role toggles; missing means skip
	ImportDrills bool
}

// DefaultOptions enables every layer with standard thicknesses.
func DefaultOptions() Options {
	enable := make(map[stackup.Role]bool, len(stackup.Roles))
	for _, role := range stackup.Roles {
		enable[role] = true
	}
	return Options{
		Thicknesses:  stackup.DefaultThicknesses(),
		Import:       enable,
		ImportDrills: true,
	}
}

// FileSet is the result of classifying input paths. Duplicate candidates
// for the same slot resolve to the last one seen.
type FileSet struct {
	Layers map[stackup.Role]string
	Drill  string
}

// Classify sorts input paths into layer and drill slots by extension.
// A .drl extension or "drill" anywhere in the name marks the drill file;
// unrecognized files are ignored.
func Classify(paths []string) FileSet {
	fs := FileSet{Layers: make(map[stackup.Role]string)}
	for _, path := range paths {
		name := strings.ToLower(filepath.Base(path))
		ext := strings.TrimPrefix(filepath.Ext(name), ".")

		if ext == "drl" || strings.Contains(name, "drill") {
			fs.Drill = path
			continue
		}
		if role, ok := stackup.RoleForExtension(ext); ok {
			fs.Layers[role] = path
		}
	}
	return fs
}

// LayerResult is one parsed and extruded layer.
type LayerResult struct {
	Role      stackup.Role
	Layer     *gerber.BoardLayer
	Placement stackup.Placement
	Enabled   bool         // import toggle for this role
	Solids    []mesh.Solid // empty when the toggle is off
	Skipped   int          // primitives dropped: missing apertures, degenerate geometry
}

// Result is a complete imported board, keyed by role. It does not depend on
// the order input paths were supplied in.
type Result struct {
	Layers      map[stackup.Role]*LayerResult
	Drills      *excellon.DrillFile
	DrillSolids []mesh.Solid
	Substrate   *mesh.Solid
	Bounds      geom.BoundingBox
}

// Import parses and extrudes all recognized files. Every recognized layer
// is parsed (the substrate is sized from all of them); only toggled-on
// layers produce geometry. Parse errors on individual files abort the
// import: they are I/O failures, not content problems.
func Import(paths []string, opts Options) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	fs := Classify(paths)
	if len(fs.Layers) == 0 && fs.Drill == "" {
		return nil, ErrNoRecognizedFiles
	}

	plan := stackup.Plan(opts.Thicknesses)
	result := &Result{
		Layers: make(map[stackup.Role]*LayerResult, len(fs.Layers)),
		Bounds: geom.NewBoundingBox(),
	}

	for role, path := range fs.Layers {
		layer, err := gerber.ParseFile(path)
		if err != nil {
			return nil, err
		}
		lr := &LayerResult{
			Role:      role,
			Layer:     layer,
			Placement: plan[role],
			Enabled:   opts.Import[role],
		}
		if lr.Enabled {
			lr.Solids, lr.Skipped = ExtrudeLayer(layer, lr.Placement)
			if lr.Skipped > 0 {
				log.Printf("[WARN] %s: %d primitives skipped", role.Title(), lr.Skipped)
			}
		}
		expandBounds(&result.Bounds, layer)
		result.Layers[role] = lr
	}

	if fs.Drill != "" && opts.ImportDrills {
		drills, err := excellon.ParseFile(fs.Drill)
		if err != nil {
			return nil, err
		}
		result.Drills = drills
		if drills.Stats.HolesDropped > 0 {
			log.Printf("[WARN] drill file: %d holes dropped (no tool selected)", drills.Stats.HolesDropped)
		}
		// Holes pierce both copper faces, so they span board + 2x copper.
		depth := opts.Thicknesses.Board + 2*opts.Thicknesses.Copper
		for _, hole := range drills.Holes {
			solid := mesh.Circle(hole.Position, hole.Diameter, 0.0, depth)
			result.DrillSolids = append(result.DrillSolids, solid)
		}
	}

	if !result.Bounds.IsEmpty() {
		substrate := mesh.Rect(
			result.Bounds.Center(),
			result.Bounds.Width()+SubstrateMargin,
			result.Bounds.Height()+SubstrateMargin,
			0.0,
			opts.Thicknesses.Board,
		)
		result.Substrate = &substrate
	}

	return result, nil
}

// ExtrudeLayer turns every primitive of a parsed layer into a solid at the
// given placement. The second return value counts primitives that produced
// no geometry: flashes without a usable aperture, traces referencing an
// unregistered aperture, and degenerate segments or regions.
func ExtrudeLayer(layer *gerber.BoardLayer, at stackup.Placement) ([]mesh.Solid, int) {
	var solids []mesh.Solid
	skipped := 0

	for _, path := range layer.Paths {
		width := mesh.FallbackDimension
		if path.Aperture != gerber.NoAperture {
			ap, ok := layer.ApertureFor(path.Aperture)
			if !ok {
				skipped++
				continue
			}
			if len(ap.Params) > 0 {
				width = ap.Params[0]
			}
		}
		solid, ok := mesh.Trace(path.Start, path.End, width, at.ZOffset, at.Thickness)
		if !ok {
			skipped++
			continue
		}
		solids = append(solids, solid)
	}

	for _, flash := range layer.Flashes {
		ap, ok := layer.ApertureFor(flash.Aperture)
		if !ok {
			skipped++
			continue
		}
		solids = append(solids, flashSolid(flash.Position, ap, at))
	}

	for _, region := range layer.Regions {
		solid, ok := mesh.Region(region, at.ZOffset, at.Thickness)
		if !ok {
			skipped++
			continue
		}
		solids = append(solids, solid)
	}

	return solids, skipped
}

// flashSolid builds the pad solid for one flash. Missing size parameters
// fall back to mesh.FallbackDimension; a rectangle with only a width is
// square.
func flashSolid(pos geom.Point2D, ap gerber.Aperture, at stackup.Placement) mesh.Solid {
	param := func(i int, fallback float64) float64 {
		if i < len(ap.Params) {
			return ap.Params[i]
		}
		return fallback
	}

	switch ap.Shape {
	case gerber.ShapeRectangle:
		width := param(0, mesh.FallbackDimension)
		return mesh.Rect(pos, width, param(1, width), at.ZOffset, at.Thickness)
	case gerber.ShapeObround:
		width := param(0, mesh.FallbackDimension)
		return mesh.Obround(pos, width, param(1, width), at.ZOffset, at.Thickness)
	default:
		return mesh.Circle(pos, param(0, mesh.FallbackDimension), at.ZOffset, at.Thickness)
	}
}

// expandBounds grows the board footprint by every piece of layer geometry,
// not just path endpoints: pads and regions count toward the substrate too.
func expandBounds(bb *geom.BoundingBox, layer *gerber.BoardLayer) {
	for _, path := range layer.Paths {
		bb.Expand(path.Start)
		bb.Expand(path.End)
	}
	for _, flash := range layer.Flashes {
		bb.Expand(flash.Position)
	}
	for _, region := range layer.Regions {
		for _, p := range region {
			bb.Expand(p)
		}
	}
}
