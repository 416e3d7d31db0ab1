// Package mesh turns 2D board primitives into closed 3D solids and writes
// them out as Wavefront OBJ geometry.
//
// Every solid is a prism: a planar boundary extruded over a vertical
// interval. The bottom cap keeps boundary order, the top cap is reversed so
// its normal points up when the bottom's points down, and each boundary edge
// becomes one side quad.
package mesh

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceGerber/pkg/geom"
)

// CircleSegments is the fixed polygon resolution used to approximate
// circular pads and drill holes.
const CircleSegments = 16

// FallbackDimension is used when an aperture exists but omits a size
// parameter, in mm.
const FallbackDimension = 0.254

// MinTraceLength is the shortest segment that still produces geometry, in
// native units. Anything shorter is degenerate and skipped.
const MinTraceLength = 1e-3

// Solid is one closed prism. Bottom and Top hold the same number of
// vertices; Faces index the combined vertex list, bottom vertices first
// (0..N-1) then top vertices (N..2N-1).
type Solid struct {
	Bottom []geom.Vec3
	Top    []geom.Vec3
	Faces  [][]int
}

// VertexCount returns the total number of vertices.
func (s Solid) VertexCount() int {
	return len(s.Bottom) + len(s.Top)
}

// Vertex resolves a face index into the combined bottom-then-top list.
func (s Solid) Vertex(i int) geom.Vec3 {
	if i < len(s.Bottom) {
		return s.Bottom[i]
	}
	return s.Top[i-len(s.Bottom)]
}

// Prism extrudes a planar boundary over [z, z+thickness]. Zero-length
// boundary edges produce no side face; they are skipped, not errors. The
// boundary is used as-is and is not checked for simplicity or winding.
func Prism(boundary []geom.Point2D, z, thickness float64) Solid {
	n := len(boundary)
	s := Solid{
		Bottom: make([]geom.Vec3, n),
		Top:    make([]geom.Vec3, n),
	}
	for i, p := range boundary {
		s.Bottom[i] = geom.Vec3{X: p.X, Y: p.Y, Z: z}
		s.Top[i] = geom.Vec3{X: p.X, Y: p.Y, Z: z + thickness}
	}

	bottom := make([]int, n)
	top := make([]int, n)
	for i := 0; i < n; i++ {
		bottom[i] = i
		top[i] = 2*n - 1 - i // reversed so the top normal faces up
	}
	s.Faces = append(s.Faces, bottom, top)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if boundary[i] == boundary[j] {
			continue
		}
		s.Faces = append(s.Faces, []int{i, j, n + j, n + i})
	}
	return s
}

// Trace builds the solid for one draw segment: a rectangle formed by
// offsetting start and end perpendicular to the segment by width/2.
// Segments shorter than MinTraceLength are degenerate; ok is false and no
// geometry is produced.
func Trace(start, end geom.Point2D, width, z, thickness float64) (Solid, bool) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Hypot(dx, dy)
	if length < MinTraceLength {
		return Solid{}, false
	}

	px := -dy / length * width / 2
	py := dx / length * width / 2

	boundary := []geom.Point2D{
		{X: start.X + px, Y: start.Y + py},
		{X: start.X - px, Y: start.Y - py},
		{X: end.X - px, Y: end.Y - py},
		{X: end.X + px, Y: end.Y + py},
	}
	return Prism(boundary, z, thickness), true
}

// Circle builds the solid for a circular pad or drill hole as a regular
// 16-gon of the given diameter.
func Circle(center geom.Point2D, diameter, z, thickness float64) Solid {
	return Prism(circleBoundary(center, diameter/2, 0, 2*math.Pi, CircleSegments, false), z, thickness)
}

// Rect builds the solid for a rectangular pad centered on pos.
func Rect(pos geom.Point2D, width, height, z, thickness float64) Solid {
	hw := width / 2
	hh := height / 2
	boundary := []geom.Point2D{
		{X: pos.X - hw, Y: pos.Y - hh},
		{X: pos.X + hw, Y: pos.Y - hh},
		{X: pos.X + hw, Y: pos.Y + hh},
		{X: pos.X - hw, Y: pos.Y + hh},
	}
	return Prism(boundary, z, thickness)
}

// Obround builds the solid for an obround (stadium) pad: a rectangle with
// semicircular caps on the longer axis. Equal width and height degenerate
// to a circle.
func Obround(pos geom.Point2D, width, height, z, thickness float64) Solid {
	if width == height {
		return Circle(pos, width, z, thickness)
	}

	const capSegments = CircleSegments / 2
	var boundary []geom.Point2D
	if width > height {
		r := height / 2
		d := width/2 - r
		right := geom.Point2D{X: pos.X + d, Y: pos.Y}
		left := geom.Point2D{X: pos.X - d, Y: pos.Y}
		boundary = append(boundary, circleBoundary(right, r, -math.Pi/2, math.Pi/2, capSegments, true)...)
		boundary = append(boundary, circleBoundary(left, r, math.Pi/2, 3*math.Pi/2, capSegments, true)...)
	} else {
		r := width / 2
		d := height/2 - r
		top := geom.Point2D{X: pos.X, Y: pos.Y + d}
		bottom := geom.Point2D{X: pos.X, Y: pos.Y - d}
		boundary = append(boundary, circleBoundary(top, r, 0, math.Pi, capSegments, true)...)
		boundary = append(boundary, circleBoundary(bottom, r, math.Pi, 2*math.Pi, capSegments, true)...)
	}
	return Prism(boundary, z, thickness)
}

// Region builds the solid for a filled polygon. The boundary is used as-is;
// ok is false only when fewer than 3 points are supplied.
func Region(points []geom.Point2D, z, thickness float64) (Solid, bool) {
	if len(points) < 3 {
		return Solid{}, false
	}
	return Prism(points, z, thickness), true
}

// circleBoundary samples an arc at uniform angular steps. inclusive adds the
// end-angle sample, used for arc caps whose closing edge is a straight line.
func circleBoundary(center geom.Point2D, radius, from, to float64, segments int, inclusive bool) []geom.Point2D {
	n := segments
	if inclusive {
		n++
	}
	points := make([]geom.Point2D, 0, n)
	for i := 0; i < n; i++ {
		angle := from + (to-from)*float64(i)/float64(segments)
		points = append(points, geom.Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}

// Triangulated returns a copy of the solid with every face fan-triangulated
// from its first vertex. Valid for convex faces; region caps from
// non-convex boundaries will self-overlap and are the caller's risk.
func (s Solid) Triangulated() Solid {
	out := Solid{Bottom: s.Bottom, Top: s.Top}
	for _, face := range s.Faces {
		if len(face) <= 3 {
			out.Faces = append(out.Faces, face)
			continue
		}
		for i := 1; i < len(face)-1; i++ {
			out.Faces = append(out.Faces, []int{face[0], face[i], face[i+1]})
		}
	}
	return out
}
