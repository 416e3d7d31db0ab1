// Package gerber parses RS-274X photoplotter files into 2D board primitives.
//
// The parser is deliberately permissive: unrecognized lines are skipped and a
// parse always returns whatever could be accumulated. Supported input is the
// linear subset of RS-274X (no arcs, macro apertures, polarity or
// step-and-repeat) with leading-zero-omission coordinates.
package gerber

import (
	"github.com/OpenTraceLab/OpenTraceGerber/pkg/geom"
)

// Unit conversion constant
const InchesToMM = 25.4

// Default coordinate format used when no %FSLA directive is present
const (
	DefaultIntegerDigits = 2
	DefaultDecimalDigits = 4
)

// NoAperture marks a draw or flash recorded before any aperture selection.
// Aperture codes below 10 are reserved by the format, so 0 is never a valid code.
const NoAperture = 0

// ApertureShape identifies the template of an aperture definition.
type ApertureShape int

const (
	ShapeCircle ApertureShape = iota
	ShapeRectangle
	ShapeObround
)

// String returns the single-letter RS-274X template code.
func (s ApertureShape) String() string {
	switch s {
	case ShapeCircle:
		return "C"
	case ShapeRectangle:
		return "R"
	case ShapeObround:
		return "O"
	}
	return "?"
}

// Aperture is one %ADD tool definition. Apertures are keyed by code within a
// single layer and are not mutated after registration.
type Aperture struct {
	Code   int           // D-code, always >= 10
	Shape  ApertureShape // Template (circle, rectangle, obround)
	Params []float64     // Template parameters in mm (diameter, or width/height)
}

// FormatSpec is the fixed-point digit layout for coordinate fields,
// set at most once per file by the %FSLA directive.
type FormatSpec struct {
	IntegerDigits int
	DecimalDigits int
}

// PathSegment is one D01 draw operation outside region mode.
type PathSegment struct {
	Start    geom.Point2D
	End      geom.Point2D
	Aperture int // Selected aperture code, or NoAperture
}

// Flash is one D03 pad placement.
type Flash struct {
	Position geom.Point2D
	Aperture int // Selected aperture code, or NoAperture
}

// Region is a closed polygon boundary accumulated between G36 and G37.
// A region always has at least 3 points; shorter boundaries are dropped.
type Region []geom.Point2D

// ParseStats counts input the parser skipped. Dropping is acceptance
// behavior (best-effort parsing), the counters only make it observable.
type ParseStats struct {
	DirectivesSkipped int // %...% blocks that matched no supported grammar
	RegionsDropped    int // Regions closed with <3 points or unterminated at EOF
	BadCoordinates    int // Coordinate fields that failed fixed-point decoding
}

// BoardLayer is the result of parsing one Gerber file. It is self-contained:
// no references are shared with the parser or with other layers.
type BoardLayer struct {
	Apertures map[int]Aperture
	Paths     []PathSegment
	Flashes   []Flash
	Regions   []Region
	Format    FormatSpec
	UnitScale float64 // Multiplier from file units to mm (1.0 or 25.4)
	Stats     ParseStats
}

// ApertureFor resolves a primitive's aperture code against the layer table.
func (l *BoardLayer) ApertureFor(code int) (Aperture, bool) {
	ap, ok := l.Apertures[code]
	return ap, ok
}
