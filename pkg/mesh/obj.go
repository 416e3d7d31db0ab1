package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// Object groups the solids of one board layer under a name and material
// for OBJ output.
type Object struct {
	Name     string
	Material string
	Solids   []Solid
}

// Material describes one MTL entry. Colors mirror the layer display colors:
// copper is rendered metallic, mask and silkscreen dielectric.
type Material struct {
	Name     string
	Diffuse  [3]float64
	Alpha    float64
	Metallic bool
}

// WriteOBJ writes all objects as one Wavefront OBJ stream. Vertex indices
// are 1-based and global across objects, per the format. mtlLib, when
// non-empty, is referenced with an mtllib statement; pair it with WriteMTL.
func WriteOBJ(w io.Writer, objects []Object, mtlLib string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Generated by OpenTraceGerber")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}

	offset := 1 // OBJ vertex indices start at 1
	for _, obj := range objects {
		fmt.Fprintf(bw, "o %s\n", obj.Name)
		if obj.Material != "" {
			fmt.Fprintf(bw, "usemtl %s\n", obj.Material)
		}
		for _, solid := range obj.Solids {
			for _, v := range solid.Bottom {
				fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
			}
			for _, v := range solid.Top {
				fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
			}
			for _, face := range solid.Faces {
				fmt.Fprint(bw, "f")
				for _, idx := range face {
					fmt.Fprintf(bw, " %d", offset+idx)
				}
				fmt.Fprintln(bw)
			}
			offset += solid.VertexCount()
		}
	}

	return bw.Flush()
}

// WriteMTL writes the material library for WriteOBJ output.
func WriteMTL(w io.Writer, materials []Material) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Generated by OpenTraceGerber")
	for _, m := range materials {
		fmt.Fprintf(bw, "newmtl %s\n", m.Name)
		fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", m.Diffuse[0], m.Diffuse[1], m.Diffuse[2])
		if m.Metallic {
			fmt.Fprintf(bw, "Ks %.4f %.4f %.4f\n", m.Diffuse[0], m.Diffuse[1], m.Diffuse[2])
			fmt.Fprintln(bw, "Ns 250.0")
		} else {
			fmt.Fprintln(bw, "Ks 0.1000 0.1000 0.1000")
			fmt.Fprintln(bw, "Ns 50.0")
		}
		if m.Alpha < 1.0 {
			fmt.Fprintf(bw, "d %.4f\n", m.Alpha)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
