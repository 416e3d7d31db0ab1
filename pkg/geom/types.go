// Package geom provides shared 2D/3D geometry types for the Gerber importer.
// Coordinates are always millimeters; parsers handle unit conversion.
package geom

// Point2D represents a 2D coordinate in board space.
type Point2D struct {
	X float64 // X coordinate in mm
	Y float64 // Y coordinate in mm
}

// Vec3 represents a 3D vertex position.
type Vec3 struct {
	X, Y, Z float64
}

// BoundingBox represents a rectangular boundary in board space.
type BoundingBox struct {
	Min Point2D // Minimum corner
	Max Point2D // Maximum corner
}

// NewBoundingBox creates an empty bounding box.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point2D{X: 1e9, Y: 1e9},   // Start with very large values
		Max: Point2D{X: -1e9, Y: -1e9}, // Start with very small values
	}
}

// IsEmpty checks if the bounding box is empty.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand expands the bounding box to include a point.
func (bb *BoundingBox) Expand(p Point2D) {
	if p.X < bb.Min.X {
		bb.Min.X = p.X
	}
	if p.Y < bb.Min.Y {
		bb.Min.Y = p.Y
	}
	if p.X > bb.Max.X {
		bb.Max.X = p.X
	}
	if p.Y > bb.Max.Y {
		bb.Max.Y = p.Y
	}
}

// ExpandBox expands to include another bounding box.
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Contains checks if a point is within the bounding box.
func (bb BoundingBox) Contains(p Point2D) bool {
	return p.X >= bb.Min.X && p.X <= bb.Max.X &&
		p.Y >= bb.Min.Y && p.Y <= bb.Max.Y
}

// Width returns the width of the bounding box.
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box.
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box.
func (bb BoundingBox) Center() Point2D {
	return Point2D{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}
