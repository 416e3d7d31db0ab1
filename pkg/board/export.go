package board

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/mesh"
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/stackup"
)

// Objects assembles the import result into named, material-tagged OBJ
// objects in bottom-to-top layer order, followed by drill holes and the
// substrate. Triangulate replaces n-gon caps with fans for consumers that
// require triangles.
func (r *Result) Objects(triangulate bool) []mesh.Object {
	var objects []mesh.Object

	for _, role := range stackup.Roles {
		lr, ok := r.Layers[role]
		if !ok || !lr.Enabled || len(lr.Solids) == 0 {
			continue
		}
		objects = append(objects, mesh.Object{
			Name:     objectName(role.Title()),
			Material: materialName(role.Title()),
			Solids:   maybeTriangulate(lr.Solids, triangulate),
		})
	}

	if len(r.DrillSolids) > 0 {
		objects = append(objects, mesh.Object{
			Name:     "Drill_Holes",
			Material: "Drill_mat",
			Solids:   maybeTriangulate(r.DrillSolids, triangulate),
		})
	}

	if r.Substrate != nil {
		substrate := *r.Substrate
		if triangulate {
			substrate = substrate.Triangulated()
		}
		objects = append(objects, mesh.Object{
			Name:     "PCB_Substrate",
			Material: "FR4",
			Solids:   []mesh.Solid{substrate},
		})
	}

	return objects
}

// Materials returns the MTL entries referenced by Objects.
func (r *Result) Materials() []mesh.Material {
	var materials []mesh.Material

	for _, role := range stackup.Roles {
		lr, ok := r.Layers[role]
		if !ok || !lr.Enabled || len(lr.Solids) == 0 {
			continue
		}
		c := role.DisplayColor()
		materials = append(materials, mesh.Material{
			Name:     materialName(role.Title()),
			Diffuse:  [3]float64{c.R, c.G, c.B},
			Alpha:    c.A,
			Metallic: role.Metallic(),
		})
	}

	if len(r.DrillSolids) > 0 {
		c := stackup.DrillColor
		materials = append(materials, mesh.Material{
			Name:     "Drill_mat",
			Diffuse:  [3]float64{c.R, c.G, c.B},
			Alpha:    c.A,
			Metallic: true,
		})
	}

	if r.Substrate != nil {
		c := stackup.SubstrateColor
		materials = append(materials, mesh.Material{
			Name:    "FR4",
			Diffuse: [3]float64{c.R, c.G, c.B},
			Alpha:   c.A,
		})
	}

	return materials
}

func objectName(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}

func materialName(title string) string {
	return objectName(title) + "_mat"
}

func maybeTriangulate(solids []mesh.Solid, triangulate bool) []mesh.Solid {
	if !triangulate {
		return solids
	}
	out := make([]mesh.Solid, len(solids))
	for i, s := range solids {
		out[i] = s.Triangulated()
	}
	return out
}
